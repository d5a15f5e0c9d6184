package producer

import (
	"context"

	"swarachna-api/internal/shared/database/dbgen"

	"github.com/segmentio/kafka-go"
)

const Topic = "order.events"

// MessageWriter is the part of *kafka.Writer the worker needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

func publishEvent(ctx context.Context, writer MessageWriter, event dbgen.OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.AggregateID.String()),
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
			{Key: "event_id", Value: []byte(event.ID.String())},
		},
	}

	return writer.WriteMessages(ctx, msg)
}
