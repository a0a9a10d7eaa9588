package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhenders/baize/internal/database"
)

func setupTestDB(t *testing.T) MetricsStore {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return New(db)
}

func TestIncrementAndGetAll(t *testing.T) {
	store := setupTestDB(t)

	counters, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, counters)

	store.Increment("simulate")
	store.Increment("simulate")
	store.Increment("lineup")

	counters, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"simulate": 2, "lineup": 1}, counters)
}
