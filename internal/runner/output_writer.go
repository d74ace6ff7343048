package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"muceval/internal/config"
	"muceval/internal/report"
)

// WriteRunOutputs writes the requested formats into the run directory.
func WriteRunOutputs(ctx context.Context, results Results, outputDir string, formats []string) (OutputPaths, error) {
	if outputDir == "" {
		return OutputPaths{}, fmt.Errorf("output directory is required")
	}
	paths, err := NewOutputPaths(outputDir, results.RunID)
	if err != nil {
		return OutputPaths{}, err
	}
	if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
		return OutputPaths{}, fmt.Errorf("create output dir: %w", err)
	}
	for _, format := range formats {
		target, err := paths.ForFormat(format)
		if err != nil {
			return OutputPaths{}, err
		}
		switch format {
		case config.FormatJSON:
			err = writeJSON(target, results)
		case config.FormatText:
			err = writeTextReport(target, results)
		case config.FormatHTML:
			err = WriteHTMLReport(ctx, target, results)
		}
		if err != nil {
			return OutputPaths{}, err
		}
	}
	return paths, nil
}

// writeJSON writes a Results payload as pretty JSON.
func writeJSON(path string, results Results) error {
	payload, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeTextReport(path string, results Results) error {
	var buf bytes.Buffer
	if err := report.WriteTable(&buf, results.Score, report.TableOptions{Total: true}); err != nil {
		return err
	}
	if diagnostics := results.Score.Diagnostics; len(diagnostics) > 0 {
		buf.WriteString("\nDiagnostics:\n")
		if err := report.WriteDiagnostics(&buf, diagnostics); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// WriteHTMLReport renders the HTML report of a run to path.
func WriteHTMLReport(ctx context.Context, path string, results Results) error {
	html, err := report.RenderHTML(ctx, ReportMeta(results), results.Score)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ReportMeta describes a run for report headers.
func ReportMeta(results Results) report.Meta {
	s := results.Settings
	return report.Meta{
		RunID:           results.RunID,
		GoldPath:        results.Inputs.Gold,
		PredictionsPath: results.Inputs.Predictions,
		GeneratedAt:     results.FinishedAt,
		Settings: []report.Setting{
			{Name: "Fuzzy", Value: strconv.FormatBool(s.Fuzzy)},
			{Name: "Threshold", Value: strconv.FormatFloat(s.FuzzyThreshold, 'f', -1, 64)},
			{Name: "Algorithm", Value: s.FuzzyAlgorithm},
			{Name: "Date mode", Value: s.DateMode},
			{Name: "Duplicates", Value: s.Duplicates},
		},
	}
}
