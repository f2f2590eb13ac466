// Package store provides the client-resident state containers: the live
// context store (skills + achievements) and the cached user profile. State is
// persisted as named whole-object snapshots, mirroring browser local storage.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Snapshot names used by the application.
const (
	SnapshotContext = "gapdebug-live-context"
	SnapshotProfile = "gapdebug-profile"
)

// SnapshotStore persists named snapshots. Load returns (nil, nil) when the
// snapshot does not exist yet.
type SnapshotStore interface {
	Load(name string) ([]byte, error)
	Save(name string, data []byte) error
}

// DB is a SQLite-backed SnapshotStore. Snapshots are stored as opaque JSON
// blobs keyed by name.
type DB struct {
	db *sql.DB
}

// Open creates or opens the snapshot database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS snapshots (
			name       TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize snapshot table: %w", err)
	}

	return &DB{db: db}, nil
}

// Load reads a named snapshot.
func (s *DB) Load(name string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM snapshots WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", name, err)
	}
	return value, nil
}

// Save writes a named snapshot, replacing any previous value.
func (s *DB) Save(name string, data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO snapshots (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, data, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", name, err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *DB) Close() error {
	return s.db.Close()
}

// MemorySnapshots is an in-memory SnapshotStore for tests and for running
// without persistence.
type MemorySnapshots struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemorySnapshots returns an empty in-memory snapshot store.
func NewMemorySnapshots() *MemorySnapshots {
	return &MemorySnapshots{data: make(map[string][]byte)}
}

// Load reads a named snapshot.
func (m *MemorySnapshots) Load(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.data[name]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Save writes a named snapshot.
func (m *MemorySnapshots) Save(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	value := make([]byte, len(data))
	copy(value, data)
	m.data[name] = value
	return nil
}
