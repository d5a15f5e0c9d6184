package midtrans

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// minor-unit exponents of the currencies the storefront can price in
var currencyExponent = map[string]int32{
	"IDR": 0,
	"INR": 2,
	"USD": 2,
}

// ToMinorUnits converts amount to the currency's smallest unit, rounding half
// away from zero.
func ToMinorUnits(currency string, amount decimal.Decimal) (int64, error) {
	exp, ok := currencyExponent[strings.ToUpper(currency)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, currency)
	}
	return amount.Shift(exp).Round(0).IntPart(), nil
}

// PayableAmount is what the customer is charged for a cart total. Quote-only
// carts total zero and are charged one major unit to hold the order.
func PayableAmount(currency string, total decimal.Decimal) (int64, error) {
	minor, err := ToMinorUnits(currency, total)
	if err != nil {
		return 0, err
	}
	floor, _ := ToMinorUnits(currency, decimal.NewFromInt(1))
	if minor < floor {
		return floor, nil
	}
	return minor, nil
}
