package duckdb_test

import (
	"context"
	"database/sql"
	"testing"

	"muceval/internal/duckdb/testing"
	"muceval/internal/testutil"
)

func openTestDB(t *testing.T) (*sql.DB, context.Context) {
	t.Helper()
	return duckdbtesting.OpenMemory(t), testutil.Context(t, 0)
}

func queryInt(t *testing.T, ctx context.Context, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		t.Fatalf("%s: %v", query, err)
	}
	return n
}
