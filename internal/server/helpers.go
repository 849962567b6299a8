package server

import (
	"time"

	"github.com/lexflow/lexfin/pkg/money"
)

// parseAmount converts a boundary decimal string ("1000.00") to cents.
func parseAmount(field, value string) (int64, error) {
	cents, err := money.ToCents(value)
	if err != nil {
		return 0, newValidationError(field, "invalid_amount", "invalid amount")
	}
	return cents, nil
}

// parseDate parses an ISO calendar date (YYYY-MM-DD).
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, newValidationError(field, "invalid_date", "invalid date, expected YYYY-MM-DD")
	}
	return t, nil
}
