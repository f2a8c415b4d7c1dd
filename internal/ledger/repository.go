// Package ledger owns the authoritative in-memory list of bills and keeps
// the derived fields (participant amounts, bill status) consistent with
// policy after every mutation.
package ledger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"splitbase/internal/calculator"
	"splitbase/internal/models"
	"splitbase/internal/storage"
)

// defaultOwner is recorded as CreatedBy on new bills when no owner is
// configured. Single-user tool, so there is no account to resolve.
const defaultOwner = "me"

// Option configures a Repository.
type Option func(*Repository)

// WithOwner sets the CreatedBy value stamped on new bills.
func WithOwner(owner string) Option {
	return func(r *Repository) { r.owner = owner }
}

// WithPreserveCustomSplit keeps a custom split intact when participants are
// added or removed. By default the repository mirrors the historical
// behavior: any participant-set change re-runs the equal split, overwriting
// custom amounts.
func WithPreserveCustomSplit() Option {
	return func(r *Repository) { r.preserveCustom = true }
}

// Repository is the bill ledger. All bills and participants are owned
// exclusively by the repository; accessors return deep copies so callers
// hold transient snapshots only.
//
// A mutex guards the state so the HTTP boundary can call in concurrently;
// the semantics are still those of a single logical actor.
type Repository struct {
	mu             sync.Mutex
	bills          []*models.Bill
	currentID      string
	owner          string
	preserveCustom bool
}

// New creates an empty Repository.
func New(opts ...Option) *Repository {
	r := &Repository{owner: defaultOwner}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ParticipantInput carries the caller-supplied fields for a new
// participant. Name validation is the boundary's responsibility; the
// repository accepts whatever it is given.
type ParticipantInput struct {
	Name    string
	Address *string
	FID     *int64
	Avatar  *string
}

// BillUpdate carries a partial update for a bill. Nil fields are left
// untouched.
type BillUpdate struct {
	Title       *string
	Description *string
	TotalAmount *float64
}

// CreateBill validates the title and amount, then inserts a new bill at the
// head of the list (most-recent-first) and makes it the current bill.
// New bills start with no participants, an equal split type, and pending
// status.
func (r *Repository) CreateBill(title string, totalAmount float64, description string) (*models.Bill, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title must not be empty")
	}
	if err := calculator.ValidateAmount(totalAmount); err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bill := &models.Bill{
		ID:           uuid.New().String(),
		Title:        title,
		Description:  description,
		TotalAmount:  totalAmount,
		Currency:     models.Currency,
		CreatedBy:    r.owner,
		CreatedAt:    time.Now(),
		Participants: []models.Participant{},
		SplitType:    models.SplitEqual,
		Status:       models.StatusPending,
	}

	r.bills = append([]*models.Bill{bill}, r.bills...)
	r.currentID = bill.ID

	return bill.Clone(), nil
}

// UpdateBill merges the supplied fields into the matching bill. Unknown
// bill IDs are a silent no-op. The current-bill view stays consistent
// because it is resolved by ID.
func (r *Repository) UpdateBill(billID string, update BillUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bill := r.find(billID)
	if bill == nil {
		return
	}
	if update.Title != nil {
		bill.Title = *update.Title
	}
	if update.Description != nil {
		bill.Description = *update.Description
	}
	if update.TotalAmount != nil {
		bill.TotalAmount = *update.TotalAmount
	}
}

// DeleteBill removes the bill and clears the current-bill pointer if it
// referenced the removed bill. Unknown IDs are a silent no-op.
func (r *Repository) DeleteBill(billID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, bill := range r.bills {
		if bill.ID == billID {
			r.bills = append(r.bills[:i], r.bills[i+1:]...)
			if r.currentID == billID {
				r.currentID = ""
			}
			return
		}
	}
}

// AddParticipant appends a new participant (amount 0, unpaid) to the bill,
// then re-runs the equal split over all participants. Historically this
// overwrites custom amounts too; WithPreserveCustomSplit opts out of that.
// Unknown bill IDs are a silent no-op.
func (r *Repository) AddParticipant(billID string, input ParticipantInput) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bill := r.find(billID)
	if bill == nil {
		return
	}

	bill.Participants = append(bill.Participants, models.Participant{
		ID:      uuid.New().String(),
		Name:    input.Name,
		Address: input.Address,
		FID:     input.FID,
		Avatar:  input.Avatar,
		Amount:  0,
		Paid:    false,
	})

	r.resplit(bill)
}

// RemoveParticipant removes the participant and re-splits equally over the
// remainder. An emptied participant list is left alone with no split
// performed. Unknown IDs are a silent no-op.
func (r *Repository) RemoveParticipant(billID, participantID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bill := r.find(billID)
	if bill == nil {
		return
	}

	for i, p := range bill.Participants {
		if p.ID == participantID {
			bill.Participants = append(bill.Participants[:i], bill.Participants[i+1:]...)
			if len(bill.Participants) > 0 {
				r.resplit(bill)
			}
			return
		}
	}
}

// UpdateParticipantAmount sets the participant's amount directly and marks
// the bill's split type as custom. Other participants' amounts are left
// untouched; the custom amounts are not required to sum to the bill total.
func (r *Repository) UpdateParticipantAmount(billID, participantID string, amount float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bill := r.find(billID)
	if bill == nil {
		return
	}

	for i := range bill.Participants {
		if bill.Participants[i].ID == participantID {
			bill.Participants[i].Amount = amount
			bill.SplitType = models.SplitCustom
			return
		}
	}
}

// MarkAsPaid sets the participant's paid flag and recomputes the bill
// status from scratch: all paid means settled, some paid means partial,
// none paid means pending.
func (r *Repository) MarkAsPaid(billID, participantID string, paid bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bill := r.find(billID)
	if bill == nil {
		return
	}

	for i := range bill.Participants {
		if bill.Participants[i].ID == participantID {
			bill.Participants[i].Paid = paid
			bill.Status = models.DeriveStatus(bill.Participants)
			return
		}
	}
}

// SplitEqually recomputes every participant's amount from the bill total
// and sets the split type back to equal. Bills with no participants are a
// no-op.
func (r *Repository) SplitEqually(billID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bill := r.find(billID)
	if bill == nil || len(bill.Participants) == 0 {
		return
	}

	split := calculator.EqualSplit(bill.TotalAmount, len(bill.Participants))
	for i := range bill.Participants {
		bill.Participants[i].Amount = split
	}
	bill.SplitType = models.SplitEqual
}

// RecalculateSplit is an alias of SplitEqually, kept for interface
// symmetry.
func (r *Repository) RecalculateSplit(billID string) {
	r.SplitEqually(billID)
}

// SetCurrent points the current-bill view at the given bill. An empty ID
// clears the pointer; unknown IDs are a silent no-op.
func (r *Repository) SetCurrent(billID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if billID == "" {
		r.currentID = ""
		return
	}
	if r.find(billID) != nil {
		r.currentID = billID
	}
}

// Current returns a copy of the current bill, or nil if none is set.
func (r *Repository) Current() *models.Bill {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.find(r.currentID).Clone()
}

// Bill returns a copy of the bill with the given ID, or nil if not found.
func (r *Repository) Bill(billID string) *models.Bill {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.find(billID).Clone()
}

// Bills returns copies of all bills, most recent first.
func (r *Repository) Bills() []*models.Bill {
	r.mu.Lock()
	defer r.mu.Unlock()

	bills := make([]*models.Bill, len(r.bills))
	for i, bill := range r.bills {
		bills[i] = bill.Clone()
	}
	return bills
}

// Snapshot exports the full ledger state for persistence.
func (r *Repository) Snapshot() *storage.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	bills := make([]*models.Bill, len(r.bills))
	for i, bill := range r.bills {
		bills[i] = bill.Clone()
	}
	return &storage.Snapshot{Bills: bills, CurrentBillID: r.currentID}
}

// Restore replaces the ledger state with a previously exported snapshot.
func (r *Repository) Restore(snap *storage.Snapshot) {
	if snap == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.bills = make([]*models.Bill, len(snap.Bills))
	for i, bill := range snap.Bills {
		r.bills[i] = bill.Clone()
	}
	r.currentID = snap.CurrentBillID
}

// find returns the bill with the given ID, or nil. Callers must hold r.mu.
func (r *Repository) find(billID string) *models.Bill {
	if billID == "" {
		return nil
	}
	for _, bill := range r.bills {
		if bill.ID == billID {
			return bill
		}
	}
	return nil
}

// resplit re-runs the equal split after a participant-set change. The split
// type itself is left untouched; only SplitEqually changes it. Callers must
// hold r.mu.
func (r *Repository) resplit(bill *models.Bill) {
	if r.preserveCustom && bill.SplitType == models.SplitCustom {
		return
	}
	split := calculator.EqualSplit(bill.TotalAmount, len(bill.Participants))
	for i := range bill.Participants {
		bill.Participants[i].Amount = split
	}
}
