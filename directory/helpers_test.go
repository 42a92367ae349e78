package directory

import (
	"os"
	"testing"

	"github.com/ezBadminton/fastimport/internal/logging"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logging.Discard()
	os.Exit(m.Run())
}

// setupTestCache creates a cache on an in-memory SQLite database
func setupTestCache(t *testing.T) *Cache {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")

	cache, err := NewCache(db)
	require.NoError(t, err, "Failed to migrate the cache")

	t.Cleanup(func() { cache.Close() })

	return cache
}
