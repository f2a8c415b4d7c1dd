// Package calculator holds the pure split-calculation rules.
package calculator

import (
	"fmt"
	"math"
)

// MaxAmount is the largest bill total accepted at creation.
const MaxAmount = 1_000_000

// EqualSplit returns each participant's share when total is divided evenly
// across count participants, rounded to two decimal places (half away from
// zero). Returns 0 when count is 0.
//
// The rounded shares may not sum back to total when total/count has more
// than two decimal digits. That drift is accepted, not corrected.
func EqualSplit(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(total/float64(count)*100) / 100
}

// ValidateAmount checks that a bill total is a finite number in
// (0, MaxAmount]. Used at bill creation only.
func ValidateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("amount must be a finite number")
	}
	if amount <= 0 {
		return fmt.Errorf("amount must be greater than zero")
	}
	if amount > MaxAmount {
		return fmt.Errorf("amount must not exceed %d", MaxAmount)
	}
	return nil
}
