package runner

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"muceval/internal/config"
)

// File names inside a run directory.
const (
	ResultsFile    = "results.json"
	HTMLReportFile = "report.html"
	TextReportFile = "report.txt"
)

var outputFiles = map[string]string{
	config.FormatJSON: ResultsFile,
	config.FormatHTML: HTMLReportFile,
	config.FormatText: TextReportFile,
}

// OutputPaths locates the files of one run under an output root.
type OutputPaths struct {
	Root  string
	RunID string
}

// NewOutputPaths rejects a blank root or run id.
func NewOutputPaths(root, runID string) (OutputPaths, error) {
	switch {
	case strings.TrimSpace(root) == "":
		return OutputPaths{}, errors.New("output root is empty")
	case strings.TrimSpace(runID) == "":
		return OutputPaths{}, errors.New("run ID is empty")
	}
	return OutputPaths{Root: root, RunID: runID}, nil
}

// RunDir is Root/RunID.
func (o OutputPaths) RunDir() string {
	return filepath.Join(o.Root, o.RunID)
}

// ForFormat returns the file written for an output format.
func (o OutputPaths) ForFormat(format string) (string, error) {
	name, ok := outputFiles[format]
	if !ok {
		return "", fmt.Errorf("unsupported output format %q", format)
	}
	return filepath.Join(o.RunDir(), name), nil
}

func (o OutputPaths) ResultsPath() string    { return filepath.Join(o.RunDir(), ResultsFile) }
func (o OutputPaths) ReportPath() string     { return filepath.Join(o.RunDir(), HTMLReportFile) }
func (o OutputPaths) TextReportPath() string { return filepath.Join(o.RunDir(), TextReportFile) }
