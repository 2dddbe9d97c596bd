package main

import (
	"context"
	"log"
	"time"

	"backlog-reporter/internal/core/cache"
	"backlog-reporter/internal/core/config"
	"backlog-reporter/internal/core/logger"
	"backlog-reporter/internal/core/server"
	backlogadapter "backlog-reporter/internal/features/backlog/adapters"
	"backlog-reporter/internal/features/backlog/domain"
	backloghandler "backlog-reporter/internal/features/backlog/handler"
	backlogservice "backlog-reporter/internal/features/backlog/service"

	"go.uber.org/zap"
)

// @title Backlog Reporter API
// @version 1.0
// @description Classifies parcel shipments into operational backlog queues and exports SLA aging reports.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		l.Fatal("Invalid report timezone", zap.String("timezone", cfg.Report.Timezone), zap.Error(err))
	}

	// Initialize report storage and verify connectivity.
	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to create Redis adapter", zap.Error(err))
	}
	defer redisCache.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		l.Fatal("Redis health check failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	reportTTL := time.Duration(cfg.Report.TTLHours) * time.Hour

	// Wire the report pipeline.
	reportStore := backlogadapter.NewRedisReportStore(redisCache)
	sheetParser := backlogadapter.NewExcelParser()
	backlogSvc := backlogservice.NewBacklogService(
		sheetParser,
		reportStore,
		domain.DefaultChannelCodes(),
		loc,
		reportTTL,
		nil,
	)
	backlogHdl := backloghandler.NewBacklogHandler(backlogSvc, reportTTL)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Post("/reports", backlogHdl.Upload)
	srv.App.Get("/reports/backlog.csv", backlogHdl.ExportBacklog)
	srv.App.Get("/reports/inventory.csv", backlogHdl.ExportInventory)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
