package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ankurvarma7/online-marketplace/internal/account"
	"github.com/ankurvarma7/online-marketplace/internal/transport"
	"github.com/ankurvarma7/online-marketplace/pkg/config"
	"github.com/ankurvarma7/online-marketplace/pkg/health"
	"github.com/ankurvarma7/online-marketplace/pkg/logger"
)

func main() {
	cfg, err := config.Load("ACCOUNTD", config.DefaultAccountAddr)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	store := account.NewMemoryStore(cfg.SessionTTL)
	handler := account.NewHandler(store)

	srv := transport.NewServer("accountd", zlog, handler.Handle)
	if err := srv.Listen(cfg.BindAddr); err != nil {
		zlog.Fatal("listen failed", zap.Error(err))
	}

	go health.Serve(cfg.HealthAddr, "accountd", zlog)

	go func() {
		zlog.Info("account store listening",
			zap.String("addr", srv.Addr()),
			zap.Duration("session_ttl", cfg.SessionTTL))
		if err := srv.Serve(context.Background()); err != nil {
			zlog.Fatal("serve failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down account store")
	if err := srv.Close(); err != nil {
		zlog.Warn("close failed", zap.Error(err))
	}
}
