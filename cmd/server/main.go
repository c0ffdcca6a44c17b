package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/wanderlog/internal/config"
	"github.com/wanderlog/internal/db"
	"github.com/wanderlog/internal/router"
)

func main() {
	// 本地开发时从 .env 读取配置，缺失时忽略
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 配置了演示账号时确保其存在
	if err := db.EnsureUser(cfg.DemoUserEmail, cfg.DemoUserPass, cfg.DemoUserName); err != nil {
		log.Printf("failed to ensure demo user: %v", err)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(db.DB, &cfg)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
