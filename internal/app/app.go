package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"swarachna-api/internal/catalog"
	"swarachna-api/internal/cloudinary"
	"swarachna-api/internal/email"
	"swarachna-api/internal/identity"
	"swarachna-api/internal/midtrans"
	"swarachna-api/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Infra holds the process-wide connections. Close releases them.
type Infra struct {
	DB    *sql.DB
	Redis *redis.Client
	Store storage.Store
}

func (i *Infra) Close() error {
	var errs []error
	if i.DB != nil {
		errs = append(errs, i.DB.Close())
	}
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	return errors.Join(errs...)
}

// Services are the outside collaborators of the API.
type Services struct {
	Catalog  *catalog.Catalog
	Identity identity.Provider
	Midtrans midtrans.Service
	Email    email.Service
	Uploader cloudinary.Service
}

// BuildApp connects the infrastructure, builds every module and registers
// the routes on router. The returned Infra must be closed by the caller.
func BuildApp(ctx context.Context, router *gin.Engine, cfg Config, logger *zap.Logger) (*Infra, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not configured")
	}

	infra, err := connectInfra(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	svcs, err := buildServices(logger)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}

	registerModules(router, cfg, infra, svcs, logger)
	return infra, nil
}

func connectInfra(ctx context.Context, cfg Config, logger *zap.Logger) (*Infra, error) {
	db, err := connectDBWithRetry(ctx, cfg.DBURL, defaultConnectRetries, logger)
	if err != nil {
		return nil, err
	}
	infra := &Infra{DB: db}

	if cfg.RedisAddr == "" {
		logger.Warn("REDIS_ADDR not set, sessions are kept in memory")
		infra.Store = storage.NewMemoryStore()
		return infra, nil
	}

	rdb, err := connectRedisWithRetry(ctx, cfg.RedisAddr, defaultConnectRetries, logger)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}
	infra.Redis = rdb
	infra.Store = storage.NewRedisStore(rdb, cfg.SessionTTL)
	return infra, nil
}

func buildServices(logger *zap.Logger) (Services, error) {
	cat, err := catalog.Default()
	if err != nil {
		return Services{}, fmt.Errorf("load catalog: %w", err)
	}

	provider, err := identity.NewFirebaseProviderFromEnv(logger.Named("identity"))
	if err != nil {
		return Services{}, err
	}

	payments, err := midtrans.NewServiceFromEnv()
	if err != nil {
		return Services{}, err
	}

	mailer, err := email.NewResendServiceFromEnv()
	if err != nil {
		logger.Warn("email disabled", zap.Error(err))
		mailer = email.NewNoopService()
	}

	uploader, err := cloudinary.NewServiceFromEnv()
	if err != nil {
		return Services{}, err
	}

	return Services{
		Catalog:  cat,
		Identity: provider,
		Midtrans: payments,
		Email:    mailer,
		Uploader: uploader,
	}, nil
}
