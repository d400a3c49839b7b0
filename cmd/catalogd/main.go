package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ankurvarma7/online-marketplace/internal/catalog"
	"github.com/ankurvarma7/online-marketplace/internal/transport"
	"github.com/ankurvarma7/online-marketplace/pkg/config"
	"github.com/ankurvarma7/online-marketplace/pkg/health"
	"github.com/ankurvarma7/online-marketplace/pkg/logger"
)

func main() {
	cfg, err := config.Load("CATALOGD", config.DefaultCatalogAddr)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	store := catalog.NewMemoryStore()
	handler := catalog.NewHandler(store)

	srv := transport.NewServer("catalogd", zlog, handler.Handle)
	if err := srv.Listen(cfg.BindAddr); err != nil {
		zlog.Fatal("listen failed", zap.Error(err))
	}

	go health.Serve(cfg.HealthAddr, "catalogd", zlog)

	go func() {
		zlog.Info("catalog store listening", zap.String("addr", srv.Addr()))
		if err := srv.Serve(context.Background()); err != nil {
			zlog.Fatal("serve failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down catalog store")
	if err := srv.Close(); err != nil {
		zlog.Warn("close failed", zap.Error(err))
	}
}
