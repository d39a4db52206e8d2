// Package core provides amount parsing and formatting utilities.
//
// Amounts are exact decimals; display always uses two fractional digits.
package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "$"

// maxPriceExponent bounds the decimal exponent to the range of a float64.
const maxPriceExponent = 308

// ParsePrice converts user text into an exact decimal.
//
// Any decimal number is accepted, with an optional sign and exponent, using
// either a dot (2.50) or a comma (2,50) as the decimal separator. No
// rounding is applied; the value is kept as typed.
//
// Examples:
//   ParsePrice("2.50")  -> 2.5, nil
//   ParsePrice("2,50")  -> 2.5, nil
//   ParsePrice("1e3")   -> 1000, nil
//   ParsePrice("abc")   -> 0, ErrInvalidPrice
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidPrice
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	if exp := d.Exponent(); exp > maxPriceExponent || exp < -maxPriceExponent {
		return decimal.Zero, ErrInvalidPrice
	}
	return d, nil
}

// ParseQuantity parses an integer count. An empty field is rejected.
func ParseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidQuantity
	}
	q, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidQuantity
	}
	return q, nil
}

// FormatAmount renders an amount as "$8.50".
func FormatAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + CurrencySymbol + d.Neg().StringFixed(2)
	}
	return CurrencySymbol + d.StringFixed(2)
}
