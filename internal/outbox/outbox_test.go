package outbox_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"swarachna-api/internal/outbox"
	"swarachna-api/internal/shared/database/dbgen"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClearCartEvent(t *testing.T) {
	orderID := uuid.New()
	ev, err := outbox.NewClearCartEvent(orderID, outbox.ClearCartPayload{
		SessionID:   "sess-1",
		UserID:      "user-1",
		OrderNumber: "SWA-1",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, ev.ID)
	assert.Equal(t, outbox.AggregateOrder, ev.AggregateType)
	assert.Equal(t, outbox.EventClearCart, ev.EventType)
	assert.Equal(t, orderID, ev.AggregateID)

	var p outbox.ClearCartPayload
	require.NoError(t, json.Unmarshal(ev.Payload, &p))
	assert.Equal(t, "sess-1", p.SessionID)
	assert.Equal(t, "SWA-1", p.OrderNumber)
}

func TestRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := outbox.NewRepository(dbgen.New(db))
	ctx := context.Background()
	id := uuid.New()

	t.Run("mark_sent", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events SET status = 'SENT'")).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.MarkSent(ctx, id))
	})

	t.Run("mark_failed", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events SET status = 'FAILED'")).
			WithArgs(id).
			WillReturnError(errors.New("db down"))

		assert.Error(t, repo.MarkFailed(ctx, id))
	})

	t.Run("list_pending", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{
			"id", "aggregate_type", "aggregate_id", "event_type", "payload", "status", "created_at", "sent_at",
		}).AddRow(id.String(), "ORDER", uuid.NewString(), "CLEAR_CART", []byte(`{"session_id":"s"}`), "PENDING", time.Now(), nil)

		mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
			WithArgs(int32(10)).
			WillReturnRows(rows)

		events, err := repo.ListPending(ctx, 10)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "CLEAR_CART", events[0].EventType)
		assert.False(t, events[0].SentAt.Valid)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
