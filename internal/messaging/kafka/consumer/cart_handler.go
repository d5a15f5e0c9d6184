package consumer

import (
	"context"
	"encoding/json"
	"log"

	"swarachna-api/internal/cart"
	"swarachna-api/internal/outbox"
)

func handleClearCart(ctx context.Context, payload []byte, cartService cart.Service) error {
	var data outbox.ClearCartPayload
	if err := json.Unmarshal(payload, &data); err != nil {
		// a malformed payload will never succeed, drop it
		log.Printf("[CONSUMER] Dropping malformed CLEAR_CART payload: %v", err)
		return nil
	}
	if data.SessionID == "" {
		log.Printf("[CONSUMER] CLEAR_CART for order %s has no session, skipping", data.OrderNumber)
		return nil
	}

	log.Printf("[CONSUMER] Clearing cart for order %s", data.OrderNumber)

	if _, err := cartService.ClearCart(ctx, data.SessionID); err != nil {
		return err
	}

	log.Printf("[CONSUMER] Cart cleared for order %s", data.OrderNumber)
	return nil
}
