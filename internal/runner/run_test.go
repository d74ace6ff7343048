package runner

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"muceval/internal/config"
	"muceval/internal/duckdb"
	"muceval/internal/normalize"
	"muceval/internal/record"
	"muceval/internal/testutil"
)

var testStart = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func writeInput(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func testParams(t *testing.T, gold, predictions string) RunParams {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Output.Formats = nil
	cfg.Output.NoColor = true
	clock := testutil.NewSteppingClock(testStart, time.Second)
	return RunParams{
		GoldPath:        writeInput(t, dir, "gold.json", gold),
		PredictionsPath: writeInput(t, dir, "predictions.json", predictions),
		Config:          cfg,
		Deps: RunDependencies{
			RunID: func() (string, error) { return "run-1", nil },
			Now:   clock.Now,
			DateParser: normalize.DateParserFunc(func(string) (time.Time, bool) {
				return time.Time{}, false
			}),
		},
	}
}

func TestRunScoresSynonymMatch(t *testing.T) {
	params := testParams(t,
		`[{"doc_id":1,"weapon":"Hand Grenade"}]`,
		`[{"doc_id":1,"filledTemplate":{"weapon":"grenade"}}]`,
	)
	results, err := Run(testutil.Context(t, 0), params)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if results.RunID != "run-1" {
		t.Fatalf("unexpected run id %q", results.RunID)
	}
	if !results.StartedAt.Equal(testStart) || !results.FinishedAt.Equal(testStart.Add(time.Second)) {
		t.Fatalf("unexpected timestamps %v..%v", results.StartedAt, results.FinishedAt)
	}
	row, ok := results.Score.Field("weapon")
	if !ok {
		t.Fatalf("weapon row missing: %+v", results.Score.Fields)
	}
	if row.Gold != 1 || row.Predicted != 1 || row.Correct != 1 {
		t.Fatalf("unexpected counts %+v", row.Counts)
	}
	if row.Precision != 1 || row.Recall != 1 || row.F1 != 1 {
		t.Fatalf("unexpected metrics %+v", row)
	}
	if results.Inputs.GoldDocuments != 1 || results.Inputs.PredictionDocuments != 1 {
		t.Fatalf("unexpected inputs %+v", results.Inputs)
	}
	if results.Settings.FuzzyThreshold != 90 || results.Settings.Duplicates != "last_wins" {
		t.Fatalf("unexpected settings %+v", results.Settings)
	}
}

func TestRunHonorsZeroThreshold(t *testing.T) {
	params := testParams(t,
		`[{"doc_id":1,"target":"embassy"}]`,
		`[{"doc_id":1,"filledTemplate":{"target":"bank"}}]`,
	)
	params.Config.Scoring.Fuzzy = true
	params.Config.Scoring.FuzzyThreshold = 0

	results, err := Run(testutil.Context(t, 0), params)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if results.Settings.FuzzyThreshold != 0 {
		t.Fatalf("expected recorded threshold 0, got %v", results.Settings.FuzzyThreshold)
	}
	row, _ := results.Score.Field("target")
	if row.Correct != 1 {
		t.Fatalf("expected fuzzy match at threshold 0, got %+v", row.Counts)
	}
}

func TestRunRequiresInputs(t *testing.T) {
	params := testParams(t, `[]`, `[]`)
	params.GoldPath = ""
	_, err := Run(testutil.Context(t, 0), params)
	if !errors.Is(err, ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
}

func TestRunResolvesInputsFromConfig(t *testing.T) {
	params := testParams(t, `[{"doc_id":"a","target":"bank"}]`, `[{"doc_id":"a","filledTemplate":{"target":"bank"}}]`)
	params.Config.BaseDir = filepath.Dir(params.GoldPath)
	params.Config.Input.Gold = filepath.Base(params.GoldPath)
	params.Config.Input.Predictions = filepath.Base(params.PredictionsPath)
	params.GoldPath, params.PredictionsPath = "", ""

	results, err := Run(testutil.Context(t, 0), params)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := results.Score.Total.F1; got != 1 {
		t.Fatalf("expected F1 1, got %v", got)
	}
}

func TestRunRejectsDuplicatePredictions(t *testing.T) {
	params := testParams(t,
		`[{"doc_id":1,"weapon":"rifle"}]`,
		`[{"doc_id":1,"filledTemplate":{"weapon":"rifle"}},{"doc_id":1,"filledTemplate":{"weapon":"pistol"}}]`,
	)
	params.Config.Input.Duplicates = "reject"
	_, err := Run(testutil.Context(t, 0), params)
	var dup *record.DuplicateError
	if !errors.As(err, &dup) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestRunReportsInvalidInput(t *testing.T) {
	params := testParams(t, `[{"weapon":"rifle"}]`, `[]`)
	_, err := Run(testutil.Context(t, 0), params)
	var inputErr *record.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected input error, got %v", err)
	}
	if inputErr.Path != params.GoldPath {
		t.Fatalf("unexpected path %q", inputErr.Path)
	}
}

func TestRunVerboseStream(t *testing.T) {
	params := testParams(t,
		`[{"doc_id":1,"weapon":"Hand Grenade"},{"doc_id":2,"weapon":"Hand Grenade","target":"bank"}]`,
		`[{"doc_id":1,"filledTemplate":{"weapon":"grenade"}},{"doc_id":2,"filledTemplate":{"weapon":"rifle"}}]`,
	)
	var verbose, stdout bytes.Buffer
	params.Config.Output.Verbose = true
	params.VerboseWriter = &verbose
	params.Stdout = &stdout

	if _, _, err := RunAndWrite(testutil.Context(t, 0), params); err != nil {
		t.Fatalf("run: %v", err)
	}
	stream := verbose.String()
	for _, want := range []string{
		"[verbose] Scoring 2 gold documents against 2 predictions",
		"[verbose] Evaluating DOC: 2",
		"[verbose] DOC 2, FIELD target: missing in prediction (gold {'bank'})",
		"[verbose] DOC 2, FIELD weapon: Predicted 'rifle' vs Gold {'hand grenades'}",
	} {
		if !strings.Contains(stream, want) {
			t.Fatalf("verbose stream missing %q:\n%s", want, stream)
		}
	}
	if strings.Contains(stream, "Evaluating DOC: 1") {
		t.Fatalf("document without diagnostics should not be announced:\n%s", stream)
	}
	summary := stdout.String()
	if !strings.HasPrefix(summary, "Evaluation Metrics:\n") {
		t.Fatalf("unexpected summary:\n%s", summary)
	}
	if !strings.Contains(summary, "Detailed Mismatches:\n- DOC 2, FIELD weapon: Predicted 'rifle' vs Gold {'hand grenades'}") {
		t.Fatalf("summary missing mismatches:\n%s", summary)
	}
}

func TestRunQuietWithoutVerbose(t *testing.T) {
	params := testParams(t, `[{"doc_id":1,"weapon":"rifle"}]`, `[{"doc_id":1,"filledTemplate":{"weapon":"pistol"}}]`)
	var verbose, stdout bytes.Buffer
	params.VerboseWriter = &verbose
	params.Stdout = &stdout

	if _, _, err := RunAndWrite(testutil.Context(t, 0), params); err != nil {
		t.Fatalf("run: %v", err)
	}
	if verbose.Len() != 0 {
		t.Fatalf("expected no verbose output, got %q", verbose.String())
	}
	if strings.Contains(stdout.String(), "Detailed Mismatches") {
		t.Fatalf("mismatch listing should be verbose only:\n%s", stdout.String())
	}
}

func TestRunAndWriteProducesArtifacts(t *testing.T) {
	params := testParams(t,
		`[{"doc_id":1,"weapon":"Hand Grenade"}]`,
		`[{"doc_id":1,"filledTemplate":{"weapon":"grenade"}}]`,
	)
	outDir := t.TempDir()
	params.Config.Output.Dir = outDir
	params.Config.Output.Formats = []string{config.FormatText, config.FormatJSON, config.FormatHTML}

	results, paths, err := RunAndWrite(testutil.Context(t, 0), params)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if paths.RunDir() != filepath.Join(outDir, "run-1") {
		t.Fatalf("unexpected run dir %q", paths.RunDir())
	}
	for _, path := range []string{paths.ResultsPath(), paths.TextReportPath(), paths.ReportPath()} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s: %v", path, err)
		}
	}
	loaded, err := LoadResults(paths.ResultsPath())
	if err != nil {
		t.Fatalf("load results: %v", err)
	}
	if loaded.RunID != results.RunID || len(loaded.Score.Fields) != 1 {
		t.Fatalf("unexpected loaded results %+v", loaded)
	}
}

func TestRunAndWriteExportsDuckDB(t *testing.T) {
	params := testParams(t,
		`[{"doc_id":1,"weapon":"rifle"},{"doc_id":2,"weapon":"pistol"}]`,
		`[{"doc_id":1,"filledTemplate":{"weapon":"rifle"}},{"doc_id":3,"filledTemplate":{"weapon":"knife"}}]`,
	)
	dbPath := filepath.Join(t.TempDir(), "runs.duckdb")
	params.Config.Output.DuckDB = dbPath

	ctx := testutil.Context(t, 0)
	if _, _, err := RunAndWrite(ctx, params); err != nil {
		t.Fatalf("run: %v", err)
	}
	db, err := duckdb.Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	var runs, diagnostics int
	if err := db.QueryRowContext(ctx, "SELECT count(*) FROM runs WHERE run_id = 'run-1'").Scan(&runs); err != nil {
		t.Fatalf("count runs: %v", err)
	}
	if err := db.QueryRowContext(ctx, "SELECT count(*) FROM diagnostics WHERE run_id = 'run-1'").Scan(&diagnostics); err != nil {
		t.Fatalf("count diagnostics: %v", err)
	}
	if runs != 1 {
		t.Fatalf("expected one run row, got %d", runs)
	}
	if diagnostics != 2 {
		t.Fatalf("expected missing + unmatched diagnostics, got %d", diagnostics)
	}
}
