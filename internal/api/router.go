package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cephaloview/ceph-backend-go/internal/collab"
	"github.com/cephaloview/ceph-backend-go/internal/config"
	"github.com/cephaloview/ceph-backend-go/internal/database"
	"github.com/cephaloview/ceph-backend-go/internal/handler"
	"github.com/cephaloview/ceph-backend-go/internal/middleware"
	"github.com/cephaloview/ceph-backend-go/internal/repository"
	"github.com/cephaloview/ceph-backend-go/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, hub *collab.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Ceph Backend API is running",
		})
	})

	// 依赖装配
	db := database.GetDB()
	landmarkHandler := handler.NewLandmarkHandler(
		service.NewLandmarkService(repository.NewSeedLandmarkRepository(db)))
	analysisHandler := handler.NewAnalysisHandler(
		service.NewAnalysisService(repository.NewAnalysisRepository(db)))
	measurementHandler := handler.NewMeasurementHandler(service.NewMeasurementService())
	wsHandler := handler.NewWSHandler(hub)

	// 协作 WebSocket 接口
	r.GET("/ws", wsHandler.Serve)

	// API 路由组
	api := r.Group("/api")
	api.Use(middleware.RateLimit(cfg.RateLimit, time.Minute))
	{
		// 自动检测标志点接口
		api.GET("/landmarks", landmarkHandler.GetSeedLandmarks)
		api.POST("/landmarks", landmarkHandler.SaveSeedLandmarks)

		// 分析模板接口
		api.GET("/analysis-templates", measurementHandler.GetTemplates)

		// 测量计算接口
		api.POST("/measurements/compute", measurementHandler.ComputeMeasurements)

		// 分析快照接口
		analyses := api.Group("/analyses")
		{
			analyses.POST("", analysisHandler.CreateAnalysis)
			analyses.GET("/:id", analysisHandler.GetAnalysis)
			analyses.PUT("/:id", analysisHandler.UpdateAnalysis)
		}

		// 患者分析接口
		api.GET("/patients/:id/analyses", analysisHandler.GetPatientAnalyses)
	}

	return r
}
