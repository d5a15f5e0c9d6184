package producer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	outboxMock "swarachna-api/internal/mock/outbox"
	"swarachna-api/internal/outbox"
	"swarachna-api/internal/shared/database/dbgen"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	fail map[string]bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, m := range msgs {
		if w.fail[string(m.Key)] {
			return errors.New("broker unavailable")
		}
		w.msgs = append(w.msgs, m)
	}
	return nil
}

func event() dbgen.OutboxEvent {
	return dbgen.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: outbox.AggregateOrder,
		AggregateID:   uuid.New(),
		EventType:     outbox.EventClearCart,
		Payload:       []byte(`{"session_id":"s1"}`),
	}
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes_and_marks", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := outboxMock.NewMockRepository(ctrl)
		ok, bad := event(), event()
		w := &fakeWriter{fail: map[string]bool{bad.AggregateID.String(): true}}

		repo.EXPECT().ListPending(gomock.Any(), int32(batchSize)).Return([]dbgen.OutboxEvent{ok, bad}, nil)
		repo.EXPECT().MarkSent(gomock.Any(), ok.ID).Return(nil)
		repo.EXPECT().MarkFailed(gomock.Any(), bad.ID).Return(nil)

		require.NoError(t, processPendingEvents(ctx, repo, w))
		require.Len(t, w.msgs, 1)

		msg := w.msgs[0]
		assert.Equal(t, ok.AggregateID.String(), string(msg.Key))
		assert.JSONEq(t, `{"session_id":"s1"}`, string(msg.Value))
		assert.Contains(t, msg.Headers, kafka.Header{Key: "event_type", Value: []byte(outbox.EventClearCart)})
	})

	t.Run("list_error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := outboxMock.NewMockRepository(ctrl)
		repo.EXPECT().ListPending(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

		assert.Error(t, processPendingEvents(ctx, repo, &fakeWriter{}))
	})
}

func TestProcessOutboxEvents_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := outboxMock.NewMockRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		ProcessOutboxEvents(ctx, repo, &fakeWriter{}, 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
