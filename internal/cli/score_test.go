package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"muceval/internal/runner"
)

const (
	goldJSON = `[{"doc_id":1,"weapon":"Hand Grenade"}]`
	predJSON = `[{"doc_id":1,"filledTemplate":{"weapon":"grenade"}}]`
)

func TestScoreEndToEnd(t *testing.T) {
	dir := inTempDir(t)
	gold := writeFile(t, filepath.Join(dir, "gold.json"), goldJSON)
	pred := writeFile(t, filepath.Join(dir, "pred.json"), predJSON)

	code, out, errOut := runCLI(t, "score", gold, pred, "--format", "", "--log-level", "error")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, errOut)
	}
	row := fmt.Sprintf("%-20s %6.2f %6.2f %6.2f %6d %6d %8d", "weapon", 1.0, 1.0, 1.0, 1, 1, 1)
	if !strings.Contains(out, "Evaluation Metrics:\n") || !strings.Contains(out, row) {
		t.Fatalf("unexpected table:\n%s", out)
	}
	if strings.Contains(out, "written to") {
		t.Fatalf("no artifacts were requested:\n%s", out)
	}
}

func TestScoreWritesArtifacts(t *testing.T) {
	dir := inTempDir(t)
	gold := writeFile(t, filepath.Join(dir, "gold.json"), goldJSON)
	pred := writeFile(t, filepath.Join(dir, "pred.json"), predJSON)

	code, out, errOut := runCLI(t, "score", gold, pred, "--format", "json", "--output-dir", "out", "--log-level", "error")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, errOut)
	}
	matches, err := filepath.Glob(filepath.Join(dir, "out", "*", "results.json"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("expected one results.json, got %v (%v)", matches, err)
	}
	results, err := runner.LoadResults(matches[0])
	if err != nil {
		t.Fatalf("load results: %v", err)
	}
	if !strings.Contains(out, "Run "+results.RunID+" written to") {
		t.Fatalf("expected run location in output:\n%s", out)
	}
}

func TestScoreWithoutInputsIsUsageError(t *testing.T) {
	inTempDir(t)
	code, _, errOut := runCLI(t, "score", "--log-level", "error")
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(errOut, "missing input path") {
		t.Fatalf("expected missing input error, got %q", errOut)
	}
}

func TestScoreRejectsSingleArgument(t *testing.T) {
	inTempDir(t)
	code, _, errOut := runCLI(t, "score", "gold.json")
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	if !strings.Contains(errOut, "expected gold and predictions paths") {
		t.Fatalf("unexpected error %q", errOut)
	}
}

func TestScoreSettingsPrecedence(t *testing.T) {
	dir := inTempDir(t)
	writeFile(t, filepath.Join(dir, ".muceval", "config.yml"), `version: 1
scoring:
  fuzzy_threshold: 70
  date_mode: strict
  workers: 2
log_level: error
`)
	t.Setenv("MUCEVAL_DATE_MODE", "off")
	t.Setenv("MUCEVAL_WORKERS", "3")

	var captured runner.RunParams
	original := runScore
	runScore = func(_ context.Context, params runner.RunParams) (runner.Results, runner.OutputPaths, error) {
		captured = params
		return runner.Results{}, runner.OutputPaths{}, nil
	}
	t.Cleanup(func() { runScore = original })

	code, _, errOut := runCLI(t, "score", "g.json", "p.json", "--fuzzy", "--workers", "4", "--algorithm", "levenshtein")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, errOut)
	}
	scoring := captured.Config.Scoring
	if !scoring.Fuzzy || scoring.FuzzyAlgorithm != "levenshtein" {
		t.Fatalf("flags not applied: %+v", scoring)
	}
	if scoring.FuzzyThreshold != 70 {
		t.Fatalf("expected threshold from file, got %v", scoring.FuzzyThreshold)
	}
	if scoring.DateMode != "off" {
		t.Fatalf("expected env to override file, got %q", scoring.DateMode)
	}
	if scoring.Workers != 4 {
		t.Fatalf("expected flag to override env, got %d", scoring.Workers)
	}
	if captured.GoldPath != filepath.Join(dir, "g.json") {
		t.Fatalf("expected absolute gold path, got %q", captured.GoldPath)
	}
}

func TestScoreInvalidThreshold(t *testing.T) {
	inTempDir(t)
	code, _, errOut := runCLI(t, "score", "g.json", "p.json", "--threshold", "120")
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut, "scoring.fuzzy_threshold") {
		t.Fatalf("expected threshold validation error, got %q", errOut)
	}
}
