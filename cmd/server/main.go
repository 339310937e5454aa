package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"ordersvc/internal/commons"
	"ordersvc/internal/config"
	"ordersvc/internal/infrastructure/logger"
	"ordersvc/internal/infrastructure/metrics"
	"ordersvc/internal/infrastructure/mysql"
	"ordersvc/internal/order"
	"ordersvc/internal/server"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	orderCtrl, promotionJob := order.NewModule(db, cfg, zapLogger)

	router := server.NewRouter(orderCtrl, metrics.NewServerMetrics(), zapLogger)
	srv := server.New(cfg.Server.Port, router, zapLogger)

	jobCtx, stopJob := context.WithCancel(context.Background())
	go promotionJob.Start(jobCtx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	stopJob()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

// loadConfig prefers a YAML file named by CONFIG_PATH and falls back
// to environment variables.
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}
