package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"swarachna-api/internal/app"
	"swarachna-api/internal/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	zl, err := logger.New("swarachna-consumer")
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	cfg, err := app.ConfigFromEnv()
	if err != nil {
		zl.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunConsumer(ctx, cfg, zl); err != nil {
		zl.Fatal("consumer failed", zap.Error(err))
	}
}
