package helper

import (
	"database/sql"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =======================
// STRING
// =======================

// RawStringToNull treats a blank string as NULL.
func RawStringToNull(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func NullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// =======================
// DECIMAL (NUMERIC columns)
// =======================

// DecimalToNull formats a price for a NUMERIC(14,2) column; nil stays NULL.
func DecimalToNull(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.StringFixed(2), Valid: true}
}

// NullToDecimal is the inverse of DecimalToNull. Unparseable values read as NULL.
func NullToDecimal(s sql.NullString) *decimal.Decimal {
	if !s.Valid {
		return nil
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return nil
	}
	return &d
}

// StringToDecimal parses a NOT NULL numeric column, falling back to zero.
func StringToDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// =======================
// TIME
// =======================

func NullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func TimeToNull(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
