package helper

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawStringToNull(t *testing.T) {
	assert.False(t, RawStringToNull("").Valid)
	assert.False(t, RawStringToNull("   ").Valid)
	assert.Equal(t, sql.NullString{String: "+62812", Valid: true}, RawStringToNull("+62812"))
}

func TestDecimalRoundTrip(t *testing.T) {
	assert.False(t, DecimalToNull(nil).Valid)

	d := decimal.RequireFromString("1500")
	n := DecimalToNull(&d)
	assert.Equal(t, "1500.00", n.String)

	back := NullToDecimal(n)
	require.NotNil(t, back)
	assert.True(t, back.Equal(d))

	assert.Nil(t, NullToDecimal(sql.NullString{}))
	assert.Nil(t, NullToDecimal(sql.NullString{String: "abc", Valid: true}))
}

func TestStringToDecimal(t *testing.T) {
	assert.True(t, StringToDecimal(" 12.50 ").Equal(decimal.RequireFromString("12.5")))
	assert.True(t, StringToDecimal("").IsZero())
}

func TestNullTime(t *testing.T) {
	assert.Nil(t, NullTimePtr(sql.NullTime{}))
	assert.False(t, TimeToNull(time.Time{}).Valid)

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := NullTimePtr(TimeToNull(now))
	require.NotNil(t, p)
	assert.Equal(t, now, *p)
}
