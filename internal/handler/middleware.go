package handler

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate limiter per IP, guarding the credential endpoints.
var (
	visitors = make(map[string]*rate.Limiter)
	mu       sync.RWMutex
)

// getVisitor returns rate limiter for IP
func getVisitor(ip string, requestsPerMinute int, burst int) *rate.Limiter {
	mu.RLock()
	limiter, exists := visitors[ip]
	mu.RUnlock()

	if !exists {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), burst)
		mu.Lock()
		visitors[ip] = limiter
		mu.Unlock()
	}

	return limiter
}

// cleanupVisitors removes old entries periodically
func cleanupVisitors() {
	for {
		time.Sleep(10 * time.Minute)
		mu.Lock()
		visitors = make(map[string]*rate.Limiter)
		mu.Unlock()
	}
}

func init() {
	go cleanupVisitors()
}

// LoginRateLimit 限制同一 IP 的登录/注册尝试频率
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := getVisitor(c.ClientIP(), 10, 5)
		if !limiter.Allow() {
			respondError(c, http.StatusTooManyRequests, "too many attempts, please try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuthRequired 是一个简单的认证中间件
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionUID(c) == "" {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}
