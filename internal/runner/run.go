package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"muceval/internal/duckdb"
	"muceval/internal/record"
	"muceval/internal/report"
)

// ErrMissingInput is returned when a gold or prediction path is not set.
var ErrMissingInput = errors.New("missing input path")

// Run loads both collections, scores them and returns the run results.
func Run(ctx context.Context, params RunParams) (Results, error) {
	cfg := params.Config
	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	goldPath, predPath, err := inputPaths(params)
	if err != nil {
		return Results{}, err
	}

	runID, err := ensureRunID(params.Deps.RunID)
	if err != nil {
		return Results{}, err
	}
	now := params.Deps.Now
	if now == nil {
		now = time.Now
	}
	startedAt := now()
	logger = logger.With("run_id", runID)

	parts, err := buildComponents(cfg, params.Deps, startedAt, logger)
	if err != nil {
		return Results{}, err
	}

	loadOpts := record.LoadOptions{
		DocIDField:    cfg.Input.DocIDField,
		TemplateField: cfg.Input.TemplateField,
	}
	goldRecords, err := record.LoadGold(goldPath, loadOpts)
	if err != nil {
		return Results{}, err
	}
	predRecords, err := record.LoadPredictions(predPath, loadOpts)
	if err != nil {
		return Results{}, err
	}
	goldIndex := record.IndexGold(goldRecords)
	predIndex, err := record.IndexPredictions(predRecords, parts.policy)
	if err != nil {
		return Results{}, fmt.Errorf("predictions input %s: %w", predPath, err)
	}
	if duplicates := predIndex.Duplicates(); len(duplicates) > 0 {
		logger.Warn("duplicate predictions resolved last-wins", "documents", len(duplicates))
	}
	logger.Info("inputs loaded",
		"gold_records", len(goldRecords),
		"gold_documents", goldIndex.Len(),
		"prediction_records", len(predRecords),
		"prediction_documents", predIndex.Len(),
		"fields", len(goldIndex.Fields()),
	)

	vlog := newVerboseLog(cfg.Output.Verbose, params.VerboseWriter, cfg.Output.NoColor)
	vlog.printf(styleDefault,
		"Scoring %d gold documents against %d predictions (fuzzy=%t threshold=%g)",
		goldIndex.Len(), predIndex.Len(), parts.settings.Fuzzy, parts.settings.FuzzyThreshold)

	scored, err := parts.evaluator.Evaluate(ctx, goldIndex, predIndex)
	if err != nil {
		return Results{}, err
	}
	vlog.diagnostics(scored.Diagnostics)
	vlog.printf(styleMetrics,
		"Micro-averaged P=%.2f R=%.2f F1=%.2f", scored.Total.Precision, scored.Total.Recall, scored.Total.F1)

	finishedAt := now()
	logger.Info("evaluation finished",
		"documents", scored.Documents,
		"mismatches", len(scored.Mismatches()),
		"missing", len(scored.Missing()),
		"unmatched_predictions", len(scored.UnmatchedPredictions()),
		"f1", scored.Total.F1,
		"elapsed", finishedAt.Sub(startedAt),
	)

	return Results{
		RunID:      runID,
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Inputs: InputsInfo{
			Gold:                 goldPath,
			Predictions:          predPath,
			GoldRecords:          len(goldRecords),
			GoldDocuments:        goldIndex.Len(),
			PredictionRecords:    len(predRecords),
			PredictionDocuments:  predIndex.Len(),
			DuplicatePredictions: predIndex.Duplicates(),
		},
		Settings: parts.settings,
		Score:    scored,
	}, nil
}

// RunAndWrite runs an evaluation, prints the metrics table and writes the
// configured artifacts.
func RunAndWrite(ctx context.Context, params RunParams) (Results, OutputPaths, error) {
	results, err := Run(ctx, params)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	cfg := params.Config
	if params.Stdout != nil {
		if err := PrintSummary(params.Stdout, results, cfg.Output.Verbose, !cfg.Output.NoColor && ShouldUseStyling(params.Stdout)); err != nil {
			return results, OutputPaths{}, err
		}
	}

	var paths OutputPaths
	if len(cfg.Output.Formats) > 0 {
		paths, err = WriteRunOutputs(ctx, results, cfg.Resolve(cfg.Output.Dir), cfg.Output.Formats)
		if err != nil {
			return results, OutputPaths{}, err
		}
	}
	if cfg.Output.DuckDB != "" {
		if err := exportDuckDB(ctx, cfg.Resolve(cfg.Output.DuckDB), results); err != nil {
			return results, paths, err
		}
	}
	return results, paths, nil
}

// PrintSummary writes the metrics table and, when verbose, the mismatch
// listing.
func PrintSummary(w io.Writer, results Results, verbose, styled bool) error {
	if _, err := fmt.Fprintln(w, "Evaluation Metrics:"); err != nil {
		return err
	}
	if err := report.WriteTable(w, results.Score, report.TableOptions{Styled: styled, Total: true}); err != nil {
		return err
	}
	if !verbose || len(results.Score.Mismatches()) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return report.WriteMismatches(w, results.Score)
}

func inputPaths(params RunParams) (string, string, error) {
	cfg := params.Config
	gold := params.GoldPath
	if gold == "" {
		gold = cfg.Resolve(cfg.Input.Gold)
	}
	pred := params.PredictionsPath
	if pred == "" {
		pred = cfg.Resolve(cfg.Input.Predictions)
	}
	if gold == "" {
		return "", "", fmt.Errorf("%w: gold (pass it as an argument or set input.gold)", ErrMissingInput)
	}
	if pred == "" {
		return "", "", fmt.Errorf("%w: predictions (pass it as an argument or set input.predictions)", ErrMissingInput)
	}
	return gold, pred, nil
}

func exportDuckDB(ctx context.Context, path string, results Results) error {
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := duckdb.EnsureSchema(ctx, db); err != nil {
		return err
	}
	return duckdb.ExportRun(ctx, db, duckdb.Run{
		RunID:       results.RunID,
		StartedAt:   results.StartedAt,
		FinishedAt:  results.FinishedAt,
		Gold:        results.Inputs.Gold,
		Predictions: results.Inputs.Predictions,
		Settings:    results.Settings,
		Result:      results.Score,
	})
}
