package order

import (
	"time"

	"github.com/shopspring/decimal"
)

type CheckoutRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email,max=254"`
	Phone string `json:"phone" binding:"omitempty,min=10,max=20"`
}

type CustomerResponse struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

type OrderItemResponse struct {
	ID            string           `json:"id"`
	ItemID        string           `json:"itemId"`
	ServiceID     string           `json:"serviceId"`
	Title         string           `json:"title"`
	Image         string           `json:"image"`
	UnitPrice     *decimal.Decimal `json:"unitPrice"`
	Quantity      int32            `json:"quantity"`
	Subtotal      *decimal.Decimal `json:"subtotal"`
	QuoteRequired bool             `json:"quoteRequired"`
}

type OrderResponse struct {
	ID                 string              `json:"id"`
	OrderNumber        string              `json:"orderNumber"`
	Status             string              `json:"status"`
	PaymentStatus      string              `json:"paymentStatus"`
	PaymentMethod      *string             `json:"paymentMethod,omitempty"`
	NotificationStatus string              `json:"notificationStatus"`
	Currency           string              `json:"currency"`
	TotalPrice         decimal.Decimal     `json:"totalPrice"`
	GrossAmount        int64               `json:"grossAmount"`
	Customer           CustomerResponse    `json:"customer"`
	SnapToken          *string             `json:"snapToken,omitempty"`
	SnapRedirectUrl    *string             `json:"snapRedirectUrl,omitempty"`
	PaidAt             *time.Time          `json:"paidAt,omitempty"`
	PlacedAt           time.Time           `json:"placedAt"`
	Items              []OrderItemResponse `json:"items,omitempty"`
}

type PaymentResponse struct {
	SnapToken   string `json:"snapToken"`
	RedirectURL string `json:"redirectUrl"`
}

// CheckoutResponse matches what the storefront expects: {order, payment}.
type CheckoutResponse struct {
	Order   OrderResponse   `json:"order"`
	Payment PaymentResponse `json:"payment"`
}

type MidtransNotificationRequest struct {
	OrderID           string `json:"order_id" binding:"required"`
	StatusCode        string `json:"status_code" binding:"required"`
	GrossAmount       string `json:"gross_amount" binding:"required"`
	SignatureKey      string `json:"signature_key" binding:"required"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
	TransactionTime   string `json:"transaction_time"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
}
