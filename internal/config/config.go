package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr     string
	Port           string
	DatabasePath   string
	SessionSecret  string
	GinMode        string
	SiteBaseURL    string
	DemoWebsiteUID string
	DemoUserEmail  string
	DemoUserPass   string
	DemoUserName   string
	MediaAPIBase   string
	MediaAPIToken  string
	MediaFolder    string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "wanderlog.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "wanderlog-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	siteBaseURL := strings.TrimSpace(os.Getenv("SITE_BASE_URL"))
	if siteBaseURL == "" {
		siteBaseURL = "http://localhost:8080"
	}

	mediaAPIBase := strings.TrimSpace(os.Getenv("MEDIA_API_BASE"))
	if mediaAPIBase == "" {
		mediaAPIBase = "https://api.publit.io/v1"
	}

	mediaFolder := strings.TrimSpace(os.Getenv("MEDIA_FOLDER"))
	if mediaFolder == "" {
		mediaFolder = "wanderlog"
	}

	return AppConfig{
		ListenAddr:     listenAddr,
		Port:           port,
		DatabasePath:   databasePath,
		SessionSecret:  sessionSecret,
		GinMode:        ginMode,
		SiteBaseURL:    siteBaseURL,
		DemoWebsiteUID: strings.TrimSpace(os.Getenv("DEMO_WEBSITE_UID")),
		DemoUserEmail:  strings.TrimSpace(os.Getenv("DEMO_USER_EMAIL")),
		DemoUserPass:   os.Getenv("DEMO_USER_PASSWORD"),
		DemoUserName:   strings.TrimSpace(os.Getenv("DEMO_USER_NAME")),
		MediaAPIBase:   mediaAPIBase,
		MediaAPIToken:  strings.TrimSpace(os.Getenv("MEDIA_API_TOKEN")),
		MediaFolder:    mediaFolder,
	}
}
