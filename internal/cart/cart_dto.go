package cart

import "github.com/shopspring/decimal"

// AddItemRequest names a gallery item. Title, image and price are looked up
// in the catalog; anything else in the body is ignored.
type AddItemRequest struct {
	ID string `json:"id" validate:"required,max=128"`
}

// UpdateQtyRequest uses a pointer so an explicit 0 (remove) is accepted.
type UpdateQtyRequest struct {
	Qty *int `json:"qty" validate:"required,max=999"`
}

type CartItemResponse struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Image         string           `json:"image"`
	Price         *decimal.Decimal `json:"price"`
	ServiceID     string           `json:"serviceId"`
	Quantity      int              `json:"quantity"`
	Subtotal      *decimal.Decimal `json:"subtotal"`
	QuoteRequired bool             `json:"quoteRequired"`
}

type CartResponse struct {
	Items         []CartItemResponse `json:"items"`
	ItemCount     int                `json:"itemCount"`
	Total         decimal.Decimal    `json:"total"`
	QuoteRequired bool               `json:"quoteRequired"`
}

type CartCountResponse struct {
	Count int `json:"count"`
}

func toResponse(s *Store) CartResponse {
	items := s.Items()
	res := CartResponse{
		Items:         make([]CartItemResponse, 0, len(items)),
		ItemCount:     s.ItemCount(),
		Total:         s.Total(),
		QuoteRequired: s.QuoteRequired(),
	}

	for _, it := range items {
		line := CartItemResponse{
			ID:            it.ID,
			Title:         it.Title,
			Image:         it.Image,
			Price:         it.Price,
			ServiceID:     it.ServiceID,
			Quantity:      it.Quantity,
			QuoteRequired: it.Price == nil,
		}
		if it.Price != nil {
			sub := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
			line.Subtotal = &sub
		}
		res.Items = append(res.Items, line)
	}
	return res
}
