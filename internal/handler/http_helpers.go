package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionUserKey = "user_uid"

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// parseUintParam 解析路径中的数字 id，非法时返回 false 并已写响应。
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(value), true
}

// sessionUID returns the logged-in tenant uid, or "" when anonymous.
func sessionUID(c *gin.Context) string {
	session := sessions.Default(c)
	if uid, ok := session.Get(sessionUserKey).(string); ok {
		return uid
	}
	return ""
}
