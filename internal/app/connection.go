package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var retryDelay = 5 * time.Second

func connectDBWithRetry(ctx context.Context, dsn string, maxRetries int, logger *zap.Logger) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DB_URL is not configured")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	for i := 1; i <= maxRetries; i++ {
		if err = db.PingContext(ctx); err == nil {
			logger.Info("connected to database")
			return db, nil
		}
		logger.Warn("database ping failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
		if !sleepCtx(ctx, retryDelay) {
			break
		}
	}

	_ = db.Close()
	return nil, fmt.Errorf("connect database: %w", err)
}

func connectRedisWithRetry(ctx context.Context, addr string, maxRetries int, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	var err error
	for i := 1; i <= maxRetries; i++ {
		if err = rdb.Ping(ctx).Err(); err == nil {
			logger.Info("connected to redis", zap.String("addr", addr))
			return rdb, nil
		}
		logger.Warn("redis ping failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
		if !sleepCtx(ctx, retryDelay) {
			break
		}
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("connect redis: %w", err)
}

// waitForKafka dials the broker until it answers. kafka-go writers and
// readers connect lazily, so this only makes startup fail fast.
func waitForKafka(ctx context.Context, broker string, maxRetries int, logger *zap.Logger) error {
	if broker == "" {
		return fmt.Errorf("KAFKA_BROKER is not configured")
	}

	var err error
	for i := 1; i <= maxRetries; i++ {
		var conn *kafka.Conn
		conn, err = kafka.DialContext(ctx, "tcp", broker)
		if err == nil {
			_ = conn.Close()
			logger.Info("connected to kafka", zap.String("broker", broker))
			return nil
		}
		logger.Warn("kafka dial failed", zap.Int("attempt", i), zap.Int("max", maxRetries), zap.Error(err))
		if !sleepCtx(ctx, retryDelay) {
			break
		}
	}
	return fmt.Errorf("connect kafka: %w", err)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
