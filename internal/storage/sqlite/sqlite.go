// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"splitbase/internal/storage"
)

// storageKey is the fixed key the ledger snapshot lives under. The whole
// state is one JSON blob in a single row, written on every mutation and
// read once at startup.
const storageKey = "splitbase-storage"

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    key TEXT PRIMARY KEY,
    data TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and sets up the schema automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the snapshot blob and rehydrates it. Returns an empty snapshot
// when nothing has been saved yet.
func (s *SQLiteStore) Load(ctx context.Context) (*storage.Snapshot, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM snapshots WHERE key = ?",
		storageKey,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return &storage.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	snap := &storage.Snapshot{}
	if err := json.Unmarshal([]byte(data), snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}

// Save serializes the snapshot and upserts it under the fixed storage key.
func (s *SQLiteStore) Save(ctx context.Context, snap *storage.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		storageKey, string(data), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
