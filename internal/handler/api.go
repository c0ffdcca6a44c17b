package handler

import (
	"github.com/wanderlog/internal/config"
	"github.com/wanderlog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	users      *service.UserService
	website    *service.WebsiteService
	adventures *service.AdventureService
	gallery    *service.GalleryService
	analytics  *service.AnalyticsService
	reports    *service.ReportService
	media      service.MediaHost
	cfg        *config.AppConfig
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, cfg *config.AppConfig) *API {
	media := service.NewMediaClient(cfg.MediaAPIBase, cfg.MediaAPIToken, cfg.MediaFolder)

	return &API{
		db:         gdb,
		users:      service.NewUserService(gdb),
		website:    service.NewWebsiteService(gdb),
		adventures: service.NewAdventureService(gdb),
		gallery:    service.NewGalleryService(gdb, media),
		analytics:  service.NewAnalyticsService(gdb),
		reports:    service.NewReportService(gdb),
		media:      media,
		cfg:        cfg,
	}
}
