package orm

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), Config{Driver: "sqlite", Path: MemoryPath})
	require.NoError(t, err, "failed to open in-memory database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func openFileDB(t *testing.T, cfg Config) *DB {
	t.Helper()
	cfg.Driver = "sqlite"
	cfg.Path = filepath.Join(t.TempDir(), "records.db")
	db, err := Open(context.Background(), cfg)
	require.NoError(t, err, "failed to open file database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func setupTestRecords(t *testing.T) *Records {
	t.Helper()
	records := NewRecords(openTestDB(t))
	require.NoError(t, records.CreateTables(context.Background()))
	return records
}
