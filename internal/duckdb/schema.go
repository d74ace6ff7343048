package duckdb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// Tables lists the export tables in foreign-key order.
var Tables = []string{"settings", "runs", "field_metrics", "diagnostics"}

// EnsureSchema creates any missing export tables and checks that all of
// them are present afterwards. It is safe to call on an existing file.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("duckdb: nil database")
	}
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("duckdb: apply schema: %w", err)
	}
	for _, table := range Tables {
		var n int
		err := db.QueryRowContext(ctx,
			"SELECT count(*) FROM information_schema.tables WHERE table_name = ?", table).Scan(&n)
		if err != nil {
			return fmt.Errorf("duckdb: inspect table %s: %w", table, err)
		}
		if n == 0 {
			return fmt.Errorf("duckdb: table %s missing after schema apply", table)
		}
	}
	return nil
}
