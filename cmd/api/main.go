package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"swarachna-api/internal/app"
	"swarachna-api/internal/bootstrap"
	"swarachna-api/internal/middleware"
	"swarachna-api/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	zl, err := logger.New("swarachna-api")
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	cfg, err := app.ConfigFromEnv()
	if err != nil {
		zl.Fatal("invalid configuration", zap.Error(err))
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	auditLogger := bootstrap.NewStdoutAuditLogger()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), bootstrap.AuditRequests(auditLogger))

	// build dependency + routes
	infra, err := app.BuildApp(ctx, r, cfg, zl)
	if err != nil {
		zl.Fatal("failed to build app", zap.Error(err))
	}
	defer func() {
		if err := infra.Close(); err != nil {
			zl.Warn("failed to close connections", zap.Error(err))
		}
	}()

	err = bootstrap.Serve(ctx, r, bootstrap.ServerConfig{
		Port:         cfg.Port,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, auditLogger)
	if err != nil {
		zl.Error("server stopped with error", zap.Error(err))
	}
}
