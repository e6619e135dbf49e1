package main

import (
	"log"

	"github.com/cephaloview/ceph-backend-go/internal/api"
	"github.com/cephaloview/ceph-backend-go/internal/collab"
	"github.com/cephaloview/ceph-backend-go/internal/config"
	"github.com/cephaloview/ceph-backend-go/internal/database"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	dbConfig := database.Config{
		Path: cfg.DBPath,
	}
	if err := database.Init(dbConfig); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	// 启动协作中心
	hub := collab.NewHub(nil)
	go hub.Run()
	defer hub.Stop()

	// 初始化路由
	router := api.SetupRouter(cfg, hub)

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
