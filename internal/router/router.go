package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/wanderlog/internal/config"
	"github.com/wanderlog/internal/handler"
	"gorm.io/gorm"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(gdb *gorm.DB, cfg *config.AppConfig) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("wanderlog_session", store))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.SiteBaseURL}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	api := handler.NewAPI(gdb, cfg)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 认证路由，带限流
	auth := r.Group("/auth")
	auth.Use(handler.LoginRateLimit())
	{
		auth.POST("/register", api.Register)
		auth.POST("/login", api.Login)
		auth.POST("/logout", api.Logout)
	}

	// 后台路由，需要登录
	dashboard := r.Group("/dashboard")
	dashboard.Use(handler.AuthRequired())
	{
		dashboard.GET("", api.Dashboard)
		dashboard.GET("/analytics", api.GetAnalytics)
		dashboard.GET("/analytics/export", api.ExportAnalytics)
		dashboard.GET("/qrcode", api.SiteQRCode)
		dashboard.POST("/settings", api.UpdateSettings)
		dashboard.POST("/profile", api.UpdateProfile)
		dashboard.POST("/upload-image", api.UploadPageImage)

		dashboard.GET("/pages/:page", api.GetEditorPage)
		dashboard.PUT("/pages/:page", api.UpdateEditorPage)
		dashboard.POST("/pages/:page/publish", api.TogglePublish)

		dashboard.GET("/adventures", api.ListAdventures)
		dashboard.POST("/adventures", api.CreateAdventure)
		dashboard.GET("/adventures/:id", api.GetAdventure)
		dashboard.PUT("/adventures/:id", api.UpdateAdventure)
		dashboard.DELETE("/adventures/:id", api.DeleteAdventure)

		dashboard.GET("/gallery", api.ListGallery)
		dashboard.POST("/gallery", api.UploadGalleryImage)
		dashboard.PUT("/gallery/:id", api.UpdateImage)
		dashboard.DELETE("/gallery/:id", api.DeleteImage)
	}

	// 公开站点路由
	r.GET("/", api.ShowPage)
	r.GET("/adventures/:id", api.ShowAdventure)
	r.GET("/site/:page", api.ShowPage)

	return r
}
