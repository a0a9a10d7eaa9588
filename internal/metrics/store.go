package metrics

import (
	"database/sql"
	"sync"

	"github.com/charmbracelet/log"
)

// store persists run counters in the engine database.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a new database-backed MetricsStore.
func New(db *sql.DB) MetricsStore {
	return &store{
		db: db,
	}
}

// Increment bumps the named counter by one, creating it at one when new.
// Errors are logged, not returned.
func (s *store) Increment(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1;
	`, key)
	if err != nil {
		log.Error("Failed to increment run counter", "key", key, "error", err)
		return
	}
	log.Debug("Incremented run counter", "key", key)
}

// GetAll returns every persisted counter keyed by name.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM metrics")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counters := make(map[string]int)
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		counters[key] = value
	}
	return counters, rows.Err()
}
