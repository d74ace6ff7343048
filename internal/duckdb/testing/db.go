// Package duckdbtesting provides throwaway DuckDB databases for tests.
package duckdbtesting

import (
	"database/sql"
	"testing"
	"time"

	"muceval/internal/duckdb"
	"muceval/internal/testutil"
)

const setupTimeout = 2 * time.Second

// Open connects to dsn through duckdb.Open and closes the connection when
// the test ends. An empty dsn is an in-memory database.
func Open(t testing.TB, dsn string) *sql.DB {
	t.Helper()
	db, err := duckdb.Open(testutil.Context(t, setupTimeout), dsn)
	if err != nil {
		t.Fatalf("open duckdb %q: %v", dsn, err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// OpenMemory returns an in-memory database with the export tables created.
func OpenMemory(t testing.TB) *sql.DB {
	t.Helper()
	db := Open(t, "")
	if err := duckdb.EnsureSchema(testutil.Context(t, setupTimeout), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return db
}
