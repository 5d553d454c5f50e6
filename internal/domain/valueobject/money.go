// Package valueobject holds small immutable domain values.
package valueobject

import (
	"strings"

	"github.com/shopspring/decimal"
)

// centsPerUnit converts major currency units to minor units.
var centsPerUnit = decimal.NewFromInt(100)

// Cents converts a decimal amount in major currency units to minor units
// (cents), truncating any fraction beyond two decimal places. The conversion
// goes through decimal arithmetic so no precision is lost to floating point.
func Cents(amount decimal.Decimal) int64 {
	return amount.Mul(centsPerUnit).IntPart()
}

// CentsFromString parses a user-supplied decimal amount and converts it to
// minor units. Blank or non-numeric input converts to zero.
func CentsFromString(amount string) int64 {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return 0
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0
	}
	return Cents(d)
}

// Amount converts minor units back to a decimal amount in major units.
func Amount(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(centsPerUnit)
}
