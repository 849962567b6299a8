// Package money converts between the decimal currency strings used at
// the API boundary and the integer cents stored everywhere else.
// Monetary amounts never touch floating point.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ToCents parses a decimal currency value ("1000.00") into integer
// cents, rounding to the nearest cent. An empty string is zero.
func ToCents(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", value, err)
	}
	return d.Mul(oneHundred).Round(0).IntPart(), nil
}

// FromCents renders cents as a pt-BR style decimal string: period as
// thousands separator, comma as decimal separator ("1.234,56").
func FromCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	units := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", units)
	var grouped strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		grouped.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if grouped.Len() > 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteString(digits[i : i+3])
	}

	return fmt.Sprintf("%s%s,%02d", sign, grouped.String(), frac)
}

// FormatBRL renders cents as a display value with currency prefix.
func FormatBRL(cents int64) string {
	return "R$ " + FromCents(cents)
}
