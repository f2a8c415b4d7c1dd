// Package share builds the human-readable bill summary used by the
// share/export command. The output is a display blob, not a machine
// format.
package share

import (
	"fmt"
	"strings"

	"splitbase/internal/calculator"
	"splitbase/internal/models"
)

// FormatUSDC renders an amount as a currency string with grouped thousands
// and two decimals, e.g. 1234.5 -> "$1,234.50".
func FormatUSDC(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "$" + b.String() + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// Text assembles the share summary for a bill: title, total, per-person
// amount, and one line per participant with a paid marker.
func Text(bill *models.Bill) string {
	var b strings.Builder

	fmt.Fprintf(&b, "💰 SplitBase Bill: %s\n\n", bill.Title)
	fmt.Fprintf(&b, "Total: %s\n", FormatUSDC(bill.TotalAmount))
	if n := len(bill.Participants); n > 0 {
		fmt.Fprintf(&b, "Per person: %s\n", FormatUSDC(calculator.EqualSplit(bill.TotalAmount, n)))
	}

	if len(bill.Participants) > 0 {
		b.WriteString("\nParticipants:\n")
		for _, p := range bill.Participants {
			marker := "⏳"
			if p.Paid {
				marker = "✅"
			}
			fmt.Fprintf(&b, "• %s: %s %s\n", p.Name, FormatUSDC(p.Amount), marker)
		}
	}

	b.WriteString("\nSettle up on Base! 🔵")
	return b.String()
}
