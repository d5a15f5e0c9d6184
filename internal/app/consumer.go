package app

import (
	"context"
	"fmt"
	"log"

	"swarachna-api/internal/cart"
	"swarachna-api/internal/catalog"
	"swarachna-api/internal/messaging/kafka/consumer"
	"swarachna-api/internal/messaging/kafka/producer"
	"swarachna-api/internal/session"
	"swarachna-api/internal/storage"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const consumerGroupID = "cart-consumer-group"

// RunConsumer clears carts of paid orders until ctx is cancelled. Carts live
// in the session storage, so it needs the same Redis as the API.
func RunConsumer(ctx context.Context, cfg Config, logger *zap.Logger) error {
	log.Println("[CONSUMER] Starting cart consumer...")

	if cfg.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required: the consumer cannot reach in-memory sessions")
	}
	rdb, err := connectRedisWithRetry(ctx, cfg.RedisAddr, defaultConnectRetries, logger)
	if err != nil {
		return err
	}
	defer rdb.Close()

	if err := waitForKafka(ctx, cfg.KafkaBroker, defaultConnectRetries, logger); err != nil {
		return err
	}

	cat, err := catalog.Default()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	sessions := session.NewManager(storage.NewRedisStore(rdb, cfg.SessionTTL))
	cartService := cart.NewService(sessions, cat, logger.Named("cart"))

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   producer.Topic,
		GroupID: consumerGroupID,
	})
	defer reader.Close()
	log.Println("[CONSUMER] Kafka reader initialized")

	// blocks until ctx is done
	consumer.ConsumeMessages(ctx, reader, cartService)

	log.Println("[CONSUMER] Stopped")
	return nil
}
