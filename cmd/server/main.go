package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/fmk-game-backend/api"
	"github.com/SlpAus/fmk-game-backend/internal/platform/config"
	"github.com/SlpAus/fmk-game-backend/internal/platform/database"
	"github.com/SlpAus/fmk-game-backend/internal/platform/health"
	"github.com/SlpAus/fmk-game-backend/internal/platform/shutdown"
	"github.com/SlpAus/fmk-game-backend/internal/platform/startup"
	"github.com/SlpAus/fmk-game-backend/internal/upload"
	"github.com/SlpAus/fmk-game-backend/pkg/lifecycle"
	"github.com/SlpAus/fmk-game-backend/pkg/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}

	// 2. 初始化基础设施
	token.Configure(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	database.InitDB(cfg.Database)
	database.InitRedis(cfg.Database.Redis)
	health.InitializeRunID()

	// 3. 执行应用首次启动初始化流程
	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 4. 启动后台的持续健康检查器
	manager := lifecycle.NewManager()
	healthHandle, err := manager.NewServiceHandle("redis-health-checker")
	if err != nil {
		panic(err)
	}
	go health.StartRedisHealthCheck(healthHandle)

	// 5. 装配HTTP服务器
	r := gin.Default()

	allowedOrigins := cfg.Server.Cors.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 上传的图片直接静态托管
	r.Static("/uploads", upload.BaseDir())

	api.SetupRoutes(r)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	// 6. 阻塞等待停机信号
	coordinator := shutdown.NewCoordinator(manager)
	coordinator.ListenForSignalsAndShutdown(server)
}
