package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/tenk"
	"github.com/fwojciec/tenk/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema on first open", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB(":memory:")
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		// Verify tables exist by querying them
		ctx := context.Background()

		var count int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM analyses").Scan(&count)
		require.NoError(t, err)
		require.Zero(t, count)
	})

	t.Run("records schema version", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)

		v, err := db.SchemaVersion(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})

	t.Run("reopening an existing database keeps its rows", func(t *testing.T) {
		t.Parallel()

		dbPath := filepath.Join(t.TempDir(), "test.db")
		ctx := context.Background()

		db := sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		err := sqlite.NewAnalysisService(db).CreateAnalysis(ctx, &tenk.Analysis{
			Ticker:          "AAPL",
			AccessionNumber: "0000320193-24-000123",
			Section:         tenk.SectionBusiness,
		})
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db = sqlite.NewDB(dbPath)
		require.NoError(t, db.Open())
		defer db.Close()

		analyses, err := sqlite.NewAnalysisService(db).FindAnalyses(ctx, tenk.AnalysisFilter{})
		require.NoError(t, err)
		assert.Len(t, analyses, 1)
	})

	t.Run("returns error for invalid path", func(t *testing.T) {
		t.Parallel()

		db := sqlite.NewDB("/nonexistent/path/db.sqlite")
		err := db.Open()
		require.Error(t, err)
	})

	t.Run("enables WAL mode for file-based databases", func(t *testing.T) {
		t.Parallel()

		dbPath := t.TempDir() + "/test.db"
		db := sqlite.NewDB(dbPath)
		err := db.Open()
		require.NoError(t, err)
		defer db.Close()

		ctx := context.Background()
		var journalMode string
		err = db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode)
		require.NoError(t, err)
		require.Equal(t, "wal", journalMode)
	})
}
