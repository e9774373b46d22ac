package billing

import (
	"errors"
	"math"
)

// ErrInvalidAmount is returned for negative amounts or amounts that do not
// resolve to a whole number of cents.
var ErrInvalidAmount = errors.New("invalid amount")

// CentsToAmount converts an integer cent value to display currency.
// Storage-level arithmetic stays in integer cents; float64 is for the
// presentation boundary only.
func CentsToAmount(cents int64) float64 {
	return float64(cents) / 100
}

// AmountToCents converts a display-currency amount to integer cents.
func AmountToCents(amount float64) (int64, error) {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrInvalidAmount
	}
	scaled := amount * 100
	cents := math.Round(scaled)
	// Anything further than float noise from a whole cent is rejected
	// rather than silently rounded.
	if math.Abs(scaled-cents) > 1e-6 {
		return 0, ErrInvalidAmount
	}
	return int64(cents), nil
}
