package consumer

import (
	"context"
	"log"

	"swarachna-api/internal/cart"
	"swarachna-api/internal/outbox"

	"github.com/segmentio/kafka-go"
)

// MessageReader is the part of *kafka.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// ConsumeMessages handles order events until ctx is cancelled. A message that
// fails to apply stays uncommitted and is redelivered.
func ConsumeMessages(ctx context.Context, reader MessageReader, cartService cart.Service) {
	log.Println("[CONSUMER] Started consuming messages")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[CONSUMER] Error fetching message: %v", err)
			continue
		}

		switch eventType := getHeader(msg.Headers, "event_type"); eventType {
		case outbox.EventClearCart:
			if err := handleClearCart(ctx, msg.Value, cartService); err != nil {
				log.Printf("[CONSUMER] Error handling %s: %v", eventType, err)
				continue
			}
		default:
			log.Printf("[CONSUMER] Skipping unknown event type %q", eventType)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Printf("[CONSUMER] Error committing message: %v", err)
		}
	}
}

func getHeader(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
