package store

import (
	"database/sql"
	"sync"
	"time"

	"github.com/mhenders/baize/internal/simulation"
)

// store handles all database operations for league data.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// SimReport is one persisted season projection for a division. Projections
// travel as a msgpack payload keyed by a UUID.
type SimReport struct {
	ID          string                      `json:"id"`
	Division    string                      `json:"division"`
	CreatedAt   time.Time                   `json:"createdAt"`
	Projections []simulation.TeamProjection `json:"projections"`
}
