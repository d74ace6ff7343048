// Package duckdb exports evaluation runs into a DuckDB database file for
// ad hoc querying across runs.
package duckdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	"muceval/internal/score"
)

// Run is one evaluation to export.
type Run struct {
	RunID       string
	StartedAt   time.Time
	FinishedAt  time.Time
	Gold        string
	Predictions string
	Settings    any
	Result      score.Result
}

// Open opens a DuckDB database file, creating it when missing. An empty
// path opens an in-memory database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	return db, nil
}

// ExportRun writes a run, its field metrics and diagnostics in one
// transaction. Settings rows are shared across runs by fingerprint.
func ExportRun(ctx context.Context, db *sql.DB, run Run) (err error) {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	if run.RunID == "" {
		return errors.New("duckdb: run id is empty")
	}
	settings, err := CanonicalJSON(run.Settings)
	if err != nil {
		return err
	}
	settingsKey := fingerprintBytes(settings)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO settings (settings_key, settings, created_at)
		 VALUES (?, ?, now())
		 ON CONFLICT (settings_key) DO NOTHING`,
		settingsKey, string(settings),
	); err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}

	total := run.Result.Total
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, settings_key, gold_path, predictions_path, documents,
		   started_at, finished_at, micro_precision, micro_recall, micro_f1)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, settingsKey, run.Gold, run.Predictions, run.Result.Documents,
		run.StartedAt.UTC(), run.FinishedAt.UTC(), total.Precision, total.Recall, total.F1,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, row := range run.Result.Fields {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO field_metrics (run_id, field, precision, recall, f1, gold, predicted, correct)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID, row.Field, row.Precision, row.Recall, row.F1, row.Gold, row.Predicted, row.Correct,
		); err != nil {
			return fmt.Errorf("insert field metrics %s: %w", row.Field, err)
		}
	}

	for seq, d := range run.Result.Diagnostics {
		gold, marshalErr := json.Marshal(d.Gold)
		if marshalErr != nil {
			err = fmt.Errorf("marshal gold values: %w", marshalErr)
			return err
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO diagnostics (diagnostic_id, run_id, seq, kind, doc_id, field, predicted, gold, similarity)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), run.RunID, seq, string(d.Kind), d.DocID,
			nullableString(d.Field), nullableString(d.Predicted), string(gold), d.Similarity,
		); err != nil {
			return fmt.Errorf("insert diagnostic %d: %w", seq, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit export: %w", err)
	}
	return nil
}

// nullableString maps empty strings to SQL NULL.
func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
