package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"splitbase/internal/models"
	"splitbase/internal/storage"
)

// PersistentRepository wraps a Repository with write-through snapshot
// persistence: the snapshot is loaded once at construction and saved after
// every mutating call. The in-memory state is the source of truth;
// persistence is best-effort mirroring, so a failed save is logged and
// never surfaced to the caller.
type PersistentRepository struct {
	repo  *Repository
	store storage.Store
}

// NewPersistent loads the snapshot from the store and returns a repository
// that mirrors every mutation back to it.
func NewPersistent(ctx context.Context, store storage.Store, opts ...Option) (*PersistentRepository, error) {
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	repo := New(opts...)
	repo.Restore(snap)

	return &PersistentRepository{repo: repo, store: store}, nil
}

// flush mirrors the current state to the store. Best effort only.
func (p *PersistentRepository) flush(ctx context.Context) {
	if err := p.store.Save(ctx, p.repo.Snapshot()); err != nil {
		slog.Warn("Failed to persist ledger snapshot", "error", err)
	}
}

// CreateBill creates a bill and mirrors the new state to the store.
func (p *PersistentRepository) CreateBill(ctx context.Context, title string, totalAmount float64, description string) (*models.Bill, error) {
	bill, err := p.repo.CreateBill(title, totalAmount, description)
	if err != nil {
		return nil, err
	}
	p.flush(ctx)
	return bill, nil
}

// UpdateBill merges the supplied fields into the matching bill.
func (p *PersistentRepository) UpdateBill(ctx context.Context, billID string, update BillUpdate) {
	p.repo.UpdateBill(billID, update)
	p.flush(ctx)
}

// DeleteBill removes the bill.
func (p *PersistentRepository) DeleteBill(ctx context.Context, billID string) {
	p.repo.DeleteBill(billID)
	p.flush(ctx)
}

// AddParticipant appends a participant and re-splits.
func (p *PersistentRepository) AddParticipant(ctx context.Context, billID string, input ParticipantInput) {
	p.repo.AddParticipant(billID, input)
	p.flush(ctx)
}

// RemoveParticipant removes a participant and re-splits the remainder.
func (p *PersistentRepository) RemoveParticipant(ctx context.Context, billID, participantID string) {
	p.repo.RemoveParticipant(billID, participantID)
	p.flush(ctx)
}

// UpdateParticipantAmount sets a custom amount for one participant.
func (p *PersistentRepository) UpdateParticipantAmount(ctx context.Context, billID, participantID string, amount float64) {
	p.repo.UpdateParticipantAmount(billID, participantID, amount)
	p.flush(ctx)
}

// MarkAsPaid sets a participant's paid flag and re-derives the status.
func (p *PersistentRepository) MarkAsPaid(ctx context.Context, billID, participantID string, paid bool) {
	p.repo.MarkAsPaid(billID, participantID, paid)
	p.flush(ctx)
}

// SplitEqually recomputes the equal split for the bill.
func (p *PersistentRepository) SplitEqually(ctx context.Context, billID string) {
	p.repo.SplitEqually(billID)
	p.flush(ctx)
}

// RecalculateSplit is an alias of SplitEqually.
func (p *PersistentRepository) RecalculateSplit(ctx context.Context, billID string) {
	p.SplitEqually(ctx, billID)
}

// SetCurrent points the current-bill view at the given bill.
func (p *PersistentRepository) SetCurrent(ctx context.Context, billID string) {
	p.repo.SetCurrent(billID)
	p.flush(ctx)
}

// Current returns a copy of the current bill, or nil.
func (p *PersistentRepository) Current() *models.Bill {
	return p.repo.Current()
}

// Bill returns a copy of the bill with the given ID, or nil.
func (p *PersistentRepository) Bill(billID string) *models.Bill {
	return p.repo.Bill(billID)
}

// Bills returns copies of all bills, most recent first.
func (p *PersistentRepository) Bills() []*models.Bill {
	return p.repo.Bills()
}
