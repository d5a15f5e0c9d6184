package email

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	Name  string
	Email string
	Phone string
}

type OrderEmailItem struct {
	Title     string
	ServiceID string
	Quantity  int
	// Price is nil for quote-only items.
	Price *decimal.Decimal
}

type OrderEmail struct {
	OrderNumber string
	PlacedAt    time.Time
	Currency    string
	Total       decimal.Decimal
	Items       []OrderEmailItem
	Customer    Customer
}

type ContactEmail struct {
	Name    string
	Email   string
	Phone   string
	Message string
	SentAt  time.Time
}

type DesignFile struct {
	Name string
	URL  string
}

type DesignSubmissionEmail struct {
	ServiceID    string
	ServiceTitle string
	Files        []DesignFile
	ContactInfo  string
	Notes        string
	SubmittedBy  string
	SubmittedAt  time.Time
}
