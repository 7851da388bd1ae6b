package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mindlog/core/internal/app"
	"github.com/mindlog/core/internal/config"
	"github.com/mindlog/core/internal/database"
	"github.com/mindlog/core/internal/pkg/logger"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigPath, "Path to YAML config file")
	migrateOnly := flag.Bool("migrate", false, "Apply database migrations and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Fatal("failed to load config", zap.Error(err))
	}

	if err := logger.Init(cfg.IsDev()); err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync()
	log := logger.L()

	if *migrateOnly {
		if err := database.EnsureSchema(cfg); err != nil {
			log.Fatal("migration failed", zap.Error(err))
		}
		log.Info("migration complete")
		return
	}

	application, err := app.New(log, cfg)
	if err != nil {
		log.Fatal("failed to initialize app", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    application.Addr(),
		Handler: application.Router(),
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	application.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("forced shutdown", zap.Error(err))
	}
	log.Info("server exited")
}
