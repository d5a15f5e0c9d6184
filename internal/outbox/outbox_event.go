package outbox

import (
	"encoding/json"

	"swarachna-api/internal/shared/database/dbgen"

	"github.com/google/uuid"
)

const (
	AggregateOrder = "ORDER"

	// EventClearCart asks the consumer to empty the cart of the session that
	// paid for an order.
	EventClearCart = "CLEAR_CART"
)

type ClearCartPayload struct {
	SessionID   string `json:"session_id"`
	UserID      string `json:"user_id"`
	OrderNumber string `json:"order_number"`
}

// NewClearCartEvent builds the insert params for a CLEAR_CART event.
func NewClearCartEvent(orderID uuid.UUID, p ClearCartPayload) (dbgen.CreateOutboxEventParams, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return dbgen.CreateOutboxEventParams{}, err
	}
	return dbgen.CreateOutboxEventParams{
		ID:            uuid.New(),
		AggregateType: AggregateOrder,
		AggregateID:   orderID,
		EventType:     EventClearCart,
		Payload:       raw,
	}, nil
}
