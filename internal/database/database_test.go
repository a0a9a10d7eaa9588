package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{
		"divisions", "teams", "rosters", "results", "fixtures",
		"frames", "player_stats", "prior_ratings", "sim_reports", "metrics",
	} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}
}

func TestInitDB_MigrationsAreIdempotent(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	// Running the migrator again against the same handle is a no-op.
	require.NoError(t, migrate(db, "../../migrations"))
}

func TestInitDB_MissingMigrationsDir(t *testing.T) {
	_, _, err := InitDB(":memory:", "", "", "./no-such-dir")
	assert.Error(t, err)
}
