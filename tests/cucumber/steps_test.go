package cucumber

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cucumber/godog"

	"muceval/internal/cli"
	"muceval/internal/config"
)

// featureState holds scenario state for CLI scenarios.
type featureState struct {
	workDir     string
	previousWD  string
	previousEnv map[string]*string
	stdout      bytes.Buffer
	stderr      bytes.Buffer
	exitCode    int
}

// InitializeScenario wires steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, state.reset()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a gold file containing:$`, state.aFileContaining("gold.json"))
	ctx.Step(`^a predictions file containing:$`, state.aFileContaining("predictions.json"))
	ctx.Step(`^a config file containing:$`, state.aFileContaining(filepath.Join(config.ConfigDirName, config.ConfigFileName)))
	ctx.Step(`^I run "([^"]*)"$`, state.iRun)
	ctx.Step(`^the exit code is (\d+)$`, state.theExitCodeIs)
	ctx.Step(`^field "([^"]+)" reports gold=(\d+) predicted=(\d+) correct=(\d+)$`, state.fieldReportsCounts)
	ctx.Step(`^field "([^"]+)" has precision ([\d.]+), recall ([\d.]+) and F1 ([\d.]+)$`, state.fieldHasMetrics)
	ctx.Step(`^the output contains "([^"]+)"$`, state.theOutputContains)
	ctx.Step(`^the output does not contain "([^"]+)"$`, state.theOutputDoesNotContain)
	ctx.Step(`^the error output contains "([^"]+)"$`, state.theErrorOutputContains)
}

// reset moves the scenario into a fresh working directory.
func (s *featureState) reset() error {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.previousEnv = map[string]*string{}

	dir, err := os.MkdirTemp("", "muceval-feature-")
	if err != nil {
		return err
	}
	s.workDir = dir
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return err
	}
	if err := s.setEnv("MUCEVAL_LOG_LEVEL", "error"); err != nil {
		return err
	}
	return s.setEnv("NO_COLOR", "1")
}

// cleanup restores the environment and removes temporary files.
func (s *featureState) cleanup() {
	if s.previousWD != "" {
		_ = os.Chdir(s.previousWD)
	}
	for key, value := range s.previousEnv {
		if value == nil {
			_ = os.Unsetenv(key)
			continue
		}
		_ = os.Setenv(key, *value)
	}
	if s.workDir != "" {
		_ = os.RemoveAll(s.workDir)
	}
}

// setEnv records and sets an environment variable for the scenario.
func (s *featureState) setEnv(key, value string) error {
	if _, recorded := s.previousEnv[key]; !recorded {
		if previous, ok := os.LookupEnv(key); ok {
			s.previousEnv[key] = &previous
		} else {
			s.previousEnv[key] = nil
		}
	}
	return os.Setenv(key, value)
}

func (s *featureState) aFileContaining(name string) func(*godog.DocString) error {
	return func(doc *godog.DocString) error {
		path := filepath.Join(s.workDir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		return os.WriteFile(path, []byte(doc.Content), 0o644)
	}
}

func (s *featureState) iRun(command string) error {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(strings.Fields(command), &s.stdout, &s.stderr)
	return nil
}

func (s *featureState) theExitCodeIs(code int) error {
	if s.exitCode != code {
		return fmt.Errorf("expected exit code %d, got %d\nstdout:\n%s\nstderr:\n%s", code, s.exitCode, s.stdout.String(), s.stderr.String())
	}
	return nil
}

// tableRow finds the metrics row of field: name, P, R, F1, gold, predicted
// and correct.
func (s *featureState) tableRow(field string) ([]string, error) {
	for _, line := range strings.Split(s.stdout.String(), "\n") {
		columns := strings.Fields(line)
		if len(columns) == 7 && columns[0] == field {
			return columns, nil
		}
	}
	return nil, fmt.Errorf("no metrics row for %q in output:\n%s", field, s.stdout.String())
}

func (s *featureState) fieldReportsCounts(field string, gold, predicted, correct int) error {
	row, err := s.tableRow(field)
	if err != nil {
		return err
	}
	got := make([]int, 3)
	for i, column := range row[4:] {
		if got[i], err = strconv.Atoi(column); err != nil {
			return fmt.Errorf("parse count %q: %w", column, err)
		}
	}
	if got[0] != gold || got[1] != predicted || got[2] != correct {
		return fmt.Errorf("field %s: expected gold=%d predicted=%d correct=%d, got %v", field, gold, predicted, correct, got)
	}
	return nil
}

func (s *featureState) fieldHasMetrics(field, precision, recall, f1 string) error {
	row, err := s.tableRow(field)
	if err != nil {
		return err
	}
	if row[1] != precision || row[2] != recall || row[3] != f1 {
		return fmt.Errorf("field %s: expected P=%s R=%s F1=%s, got %v", field, precision, recall, f1, row[1:4])
	}
	return nil
}

func (s *featureState) theOutputContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) theOutputDoesNotContain(text string) error {
	if strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("expected output not to contain %q, got:\n%s", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) theErrorOutputContains(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("expected error output to contain %q, got:\n%s", text, s.stderr.String())
	}
	return nil
}
