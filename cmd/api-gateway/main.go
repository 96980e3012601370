package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/bluescreenjay/autoscheduler-prototype-2/api/swagger"
	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/handler"
	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/middleware"
	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/service"
	"github.com/bluescreenjay/autoscheduler-prototype-2/pkg/config"
	"github.com/bluescreenjay/autoscheduler-prototype-2/pkg/logger"
	reqidmiddleware "github.com/bluescreenjay/autoscheduler-prototype-2/pkg/middleware/requestid"
)

// @title Interview Autoscheduler API
// @version 0.2.0
// @description Generates interview schedule proposals from inline rosters
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	scheduleSvc := service.NewScheduleService(cfg.Scheduler, metricsSvc, logr)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	scheduleHandler.Register(r)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
