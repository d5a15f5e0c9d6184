package midtrans

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayableAmount(t *testing.T) {
	tests := []struct {
		currency string
		total    string
		want     int64
	}{
		{"IDR", "150000", 150000},
		{"IDR", "0", 1},
		{"INR", "0", 100},
		{"INR", "499.995", 50000},
		{"usd", "12.34", 1234},
		{"INR", "0.40", 100},
	}
	for _, tt := range tests {
		got, err := PayableAmount(tt.currency, decimal.RequireFromString(tt.total))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s", tt.currency, tt.total)
	}

	_, err := PayableAmount("EUR", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestNewService_Currency(t *testing.T) {
	_, err := NewService(Config{ServerKey: "k", Currency: "INR"})
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)

	_, err = NewService(Config{Currency: "IDR"})
	assert.Error(t, err)

	svc, err := NewService(Config{ServerKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "IDR", svc.Currency())
}

func TestVerifySignature(t *testing.T) {
	svc, err := NewService(Config{ServerKey: "server-key"})
	require.NoError(t, err)

	sig := Signature("ORD-1", "200", "150000.00", "server-key")
	assert.Len(t, sig, 128)
	assert.True(t, svc.VerifySignature("ORD-1", "200", "150000.00", sig))
	assert.False(t, svc.VerifySignature("ORD-1", "200", "1.00", sig))
	assert.False(t, svc.VerifySignature("ORD-1", "200", "150000.00", Signature("ORD-1", "200", "150000.00", "other")))
}

func TestReconcileItems(t *testing.T) {
	priced := &CreateTransactionRequest{
		OrderID:     "ORD-1",
		GrossAmount: 3000,
		Items: []ItemDetail{
			{ID: "a", Price: 1000, Quantity: 2, Name: "Logo Design"},
			{ID: "b", Price: 1000, Quantity: 1, Name: "Flyer Design"},
		},
	}
	items := reconcileItems(priced)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)

	quoteOnly := &CreateTransactionRequest{
		OrderID:     "ORD-2",
		GrossAmount: 1,
		Items:       []ItemDetail{{ID: "c", Price: 0, Quantity: 3, Name: "Event Banner"}},
	}
	items = reconcileItems(quoteOnly)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), items[0].Price)
	assert.Equal(t, int32(1), items[0].Qty)
	assert.Equal(t, "ORD-2", items[0].ID)
}
