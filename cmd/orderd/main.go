package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ZuberiPay/songsnap.xyz/internal/commons"
	"github.com/ZuberiPay/songsnap.xyz/internal/config"
	"github.com/ZuberiPay/songsnap.xyz/internal/infrastructure/logger"
	"github.com/ZuberiPay/songsnap.xyz/internal/orderd"
	"github.com/ZuberiPay/songsnap.xyz/internal/server"
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

	store := orderd.NewMemoryStore()
	handler := orderd.NewHandler(store, cfg.Orderd.WhatsAppNumber, zapLogger)
	router := orderd.NewRouter(handler)

	srv := server.New(cfg.Orderd.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}

func loadConfig() (*config.Config, error) {
	if path := os.Getenv("SONGSNAP_CONFIG"); path != "" {
		return commons.LoadConfig(path)
	}
	return config.Load()
}
