package producer

import (
	"context"
	"log"
	"time"

	"swarachna-api/internal/outbox"
)

const (
	PollInterval = 5 * time.Second
	batchSize    = 10
)

// ProcessOutboxEvents polls pending outbox events until ctx is cancelled.
func ProcessOutboxEvents(ctx context.Context, repo outbox.Repository, writer MessageWriter, interval time.Duration) {
	if interval <= 0 {
		interval = PollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[WORKER] Outbox processor started (polling every %s)", interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := processPendingEvents(ctx, repo, writer); err != nil {
				log.Printf("[WORKER] Error processing events: %v", err)
			}
		}
	}
}

func processPendingEvents(ctx context.Context, repo outbox.Repository, writer MessageWriter) error {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	log.Printf("[WORKER] Processing %d pending events", len(events))

	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			log.Printf("[WORKER] Failed to publish event %s: %v", event.ID, err)
			if err := repo.MarkFailed(ctx, event.ID); err != nil {
				log.Printf("[WORKER] Failed to mark event %s as FAILED: %v", event.ID, err)
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			log.Printf("[WORKER] Failed to mark event %s as SENT: %v", event.ID, err)
			continue
		}

		log.Printf("[WORKER] Event %s sent and marked successfully", event.ID)
	}

	return nil
}
