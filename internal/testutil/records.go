package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/leaprecord/internal/orm"
)

// NewTestDB opens a private in-memory SQLite database closed on cleanup.
func NewTestDB(t testing.TB) *orm.DB {
	t.Helper()
	db, err := orm.Open(context.Background(), orm.Config{
		Driver: "sqlite",
		Path:   orm.MemoryPath,
		Logger: NewTestLogger(t),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewTestRecords returns mappers over a fresh in-memory database with
// every table created.
func NewTestRecords(t testing.TB) *orm.Records {
	t.Helper()
	records := orm.NewRecords(NewTestDB(t))
	if err := records.CreateTables(context.Background()); err != nil {
		t.Fatalf("failed to create tables: %v", err)
	}
	return records
}

// TempDatabasePath returns a SQLite file path inside a per-test temp dir.
func TempDatabasePath(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "leaprecord.db")
}
