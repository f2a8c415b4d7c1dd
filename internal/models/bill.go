package models

import "time"

// Currency is the sole supported currency unit.
const Currency = "USDC"

// SplitType records which split strategy last produced the participant amounts.
type SplitType string

const (
	SplitEqual      SplitType = "equal"
	SplitCustom     SplitType = "custom"
	SplitPercentage SplitType = "percentage"
)

// Status is the payment status of a bill, derived from its participants'
// paid flags. It is never set directly by callers.
type Status string

const (
	StatusPending Status = "pending"
	StatusPartial Status = "partial"
	StatusSettled Status = "settled"
)

// Bill represents a shared expense to be split among participants.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format), immutable
	// after creation.
	ID string `json:"id"`

	// Title is the human-readable name for the bill. Never empty.
	Title string `json:"title"`

	// Description is an optional free-form note.
	Description string `json:"description,omitempty"`

	// TotalAmount is the full amount of the bill in Currency units.
	TotalAmount float64 `json:"totalAmount"`

	// Currency is always "USDC" for now.
	Currency string `json:"currency"`

	// CreatedBy and CreatedAt are provenance metadata, immutable after
	// creation.
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`

	// Participants is the ordered list of people splitting the bill.
	// Insertion order is meaningful for display only.
	Participants []Participant `json:"participants"`

	// SplitType records the strategy that last produced the amounts.
	SplitType SplitType `json:"splitType"`

	// Status is derived from the participants' paid flags.
	Status Status `json:"status"`
}

// Clone returns a deep copy of the bill. The ledger hands out clones so
// callers never hold references into its internal state.
func (b *Bill) Clone() *Bill {
	if b == nil {
		return nil
	}
	c := *b
	c.Participants = make([]Participant, len(b.Participants))
	for i := range b.Participants {
		c.Participants[i] = b.Participants[i].Clone()
	}
	return &c
}

// DeriveStatus computes a bill's status from its participants' paid flags:
// all paid means settled, some paid means partial, none paid (including an
// empty participant list) means pending.
func DeriveStatus(participants []Participant) Status {
	if len(participants) == 0 {
		return StatusPending
	}
	paid := 0
	for _, p := range participants {
		if p.Paid {
			paid++
		}
	}
	switch {
	case paid == len(participants):
		return StatusSettled
	case paid > 0:
		return StatusPartial
	default:
		return StatusPending
	}
}
