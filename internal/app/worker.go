package app

import (
	"context"
	"log"

	"swarachna-api/internal/messaging/kafka/producer"
	"swarachna-api/internal/outbox"
	"swarachna-api/internal/shared/database/dbgen"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunWorker relays pending outbox events to Kafka until ctx is cancelled.
func RunWorker(ctx context.Context, cfg Config, logger *zap.Logger) error {
	log.Println("[WORKER] Starting outbox processor...")

	db, err := connectDBWithRetry(ctx, cfg.DBURL, defaultConnectRetries, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := waitForKafka(ctx, cfg.KafkaBroker, defaultConnectRetries, logger); err != nil {
		return err
	}

	kafkaWriter := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBroker),
		Topic:                  producer.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	defer kafkaWriter.Close()
	log.Println("[WORKER] Kafka writer initialized")

	outboxRepo := outbox.NewRepository(dbgen.New(db))

	// blocks until ctx is done
	producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, producer.PollInterval)

	log.Println("[WORKER] Stopped")
	return nil
}
