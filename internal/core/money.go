// Package core provides the billtrack domain types and the pure derivation
// logic over them.
//
// This file contains amount parsing and currency formatting helpers. Amounts
// are decimal.Decimal throughout; floats never touch money.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-supplied amount string into a decimal value
// rounded to two places. It accepts both dot (12.34) and comma (12,34)
// decimal separators. Returns ErrInvalidAmount for malformed input and for
// values that are not strictly positive.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// A single decimal comma is the local convention; normalize it, but
	// reject mixed usage like "1,234.56" rather than guess a thousands
	// separator.
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") || strings.Count(s, ",") > 1 {
			return decimal.Zero, ErrInvalidAmount
		}
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	d = d.Round(2)
	if !d.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatBRL renders an amount the way the reports and alerts display it:
// "R$ 1234,56" with a decimal comma and two fixed places.
func FormatBRL(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	s = strings.ReplaceAll(s, ".", ",")
	if neg {
		return "-R$ " + s
	}
	return "R$ " + s
}
