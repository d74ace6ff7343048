package reportserver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"muceval/internal/runner"
)

var errRunNotFound = errors.New("run not found")

// runSummary is one entry of the run index.
type runSummary struct {
	RunID     string
	Documents int
	F1        float64
}

// listRuns returns the runs under dir, newest run id first. Directories
// without a readable results.json are skipped.
func listRuns(dir string) ([]runSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read output dir: %w", err)
	}
	var runs []runSummary
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		results, err := runner.LoadResults(filepath.Join(dir, entry.Name(), runner.ResultsFile))
		if err != nil {
			continue
		}
		runs = append(runs, runSummary{
			RunID:     entry.Name(),
			Documents: results.Score.Documents,
			F1:        results.Score.Total.F1,
		})
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].RunID > runs[j].RunID })
	return runs, nil
}

// resultsPath maps a run id onto its results file, refusing ids that would
// escape dir.
func resultsPath(dir, runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." || strings.ContainsAny(runID, `/\`) {
		return "", errRunNotFound
	}
	path := filepath.Join(dir, runID, runner.ResultsFile)
	if _, err := os.Stat(path); err != nil {
		return "", errRunNotFound
	}
	return path, nil
}
