// Package storage provides abstractions for persistent snapshot storage.
package storage

import (
	"context"

	"splitbase/internal/models"
)

// Snapshot is the entire ledger state serialized as one blob: the bill list
// (most-recent-first) and the current-bill pointer. There is no schema
// version field; format changes are not migrated.
type Snapshot struct {
	Bills         []*models.Bill `json:"bills"`
	CurrentBillID string         `json:"currentBillId,omitempty"`
}

// Store defines the interface for snapshot persistence.
// This abstraction allows swapping storage backends without changing the
// ledger, and keeps the ledger's pure logic testable without a backend.
type Store interface {
	// Load reads the persisted snapshot. A store with no snapshot yet
	// returns an empty (non-nil) snapshot, not an error.
	Load(ctx context.Context) (*Snapshot, error)

	// Save overwrites the persisted snapshot with the given state.
	Save(ctx context.Context, snap *Snapshot) error

	// Close releases any resources held by the store.
	Close() error
}
