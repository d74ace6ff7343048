package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// addGitignoreEntry appends the results folder to root/.gitignore unless
// an identical line is already present.
func addGitignoreEntry(root, outputDir string) (bool, error) {
	entry, err := gitignoreEntry(root, outputDir)
	if err != nil {
		return false, err
	}
	path := filepath.Join(root, ".gitignore")
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, fmt.Errorf("read .gitignore: %w", err)
	}
	lines := strings.Split(string(existing), "\n")
	if slices.ContainsFunc(lines, func(line string) bool { return strings.TrimSpace(line) == entry }) {
		return false, nil
	}
	content := string(existing)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += entry + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write .gitignore: %w", err)
	}
	return true, nil
}

// gitignoreEntry expresses outputDir relative to root in slash form.
func gitignoreEntry(root, outputDir string) (string, error) {
	if strings.TrimSpace(outputDir) == "" {
		return "", fmt.Errorf("output dir is required")
	}
	rel := filepath.Clean(outputDir)
	if filepath.IsAbs(rel) {
		var err error
		if rel, err = filepath.Rel(root, rel); err != nil {
			return "", fmt.Errorf("resolve output dir: %w", err)
		}
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output dir %q is outside %s", outputDir, root)
	}
	return filepath.ToSlash(rel), nil
}
