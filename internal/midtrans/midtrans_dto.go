package midtrans

// CreateTransactionRequest is what checkout hands to Snap. Amounts are in the
// currency's minor units (see ToMinorUnits).
type CreateTransactionRequest struct {
	OrderID     string
	GrossAmount int64
	Customer    *CustomerDetails
	Items       []ItemDetail
}

type CustomerDetails struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// ItemDetail is one order line. Quantity never exceeds cart.MaxQuantity.
type ItemDetail struct {
	ID       string
	Name     string
	Price    int64
	Quantity int32
}

// CreateTransactionResponse carries the Snap token the storefront opens.
type CreateTransactionResponse struct {
	Token       string
	RedirectURL string
}
