// Package moneypkg provides exact-decimal money amount parsing and arithmetic.
package moneypkg

import (
	"errors"
	"regexp"

	"github.com/shopspring/decimal"
)

// ErrInvalidFormat indicates an amount string that is not a plain decimal
// with at most 2 fractional digits and no superfluous leading zeros.
var ErrInvalidFormat = errors.New("invalid amount format")

// Accepts "0" or a non-zero-leading integer, optionally followed by 1-2
// decimal places.
var amountRx = regexp.MustCompile(`^(?:0|[1-9]\d*)(?:\.\d{1,2})?$`)

// Parse parses a monetary amount string into an exact decimal.
func Parse(amount string) (decimal.Decimal, error) {
	if !amountRx.MatchString(amount) {
		return decimal.Decimal{}, ErrInvalidFormat
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidFormat
	}

	return d, nil
}

// Add returns a + b rounded to cents.
func Add(a, b decimal.Decimal) decimal.Decimal {
	return a.Add(b).Round(2)
}

// String renders an amount with exactly 2 decimal places.
func String(d decimal.Decimal) string {
	return d.StringFixed(2)
}
