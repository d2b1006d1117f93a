package tracker

import (
	"database/sql"
	"fmt"
	"sync"
)

// StateKey is the single slot the progress overlay lives under.
const StateKey = "progress"

// Store is the minimal durable key-value capability the tracker needs.
// Only the tracker writes through it; everything else reads the merged
// collection.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// SQLiteStore keeps state in the tracker_state table.
type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: db}
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.DB.QueryRow(`
		SELECT value FROM tracker_state WHERE key = ?
	`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get state %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	_, err := s.DB.Exec(`
		INSERT INTO tracker_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("set state %q: %w", key, err)
	}
	return nil
}

// MemStore is an in-memory Store for tests and throwaway runs.
type MemStore struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]string)}
}

func (m *MemStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
