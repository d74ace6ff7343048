package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"muceval/internal/config"
	"muceval/internal/runner"
)

// resolveRun locates a results file from a file path, a run directory, or
// a run id under the configured output directory.
func resolveRun(cfg config.Config, ref string) (runner.Results, string, error) {
	candidates := []string{ref}
	if !filepath.IsAbs(ref) {
		candidates = append(candidates, filepath.Join(cfg.Resolve(cfg.Output.Dir), ref))
	}
	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err != nil {
			continue
		}
		path := candidate
		if info.IsDir() {
			path = filepath.Join(candidate, runner.ResultsFile)
		}
		results, err := runner.LoadResults(path)
		if err != nil {
			return runner.Results{}, "", err
		}
		return results, path, nil
	}
	return runner.Results{}, "", fmt.Errorf("run %q not found", ref)
}
