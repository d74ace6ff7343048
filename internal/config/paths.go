package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Layout of the per-project muceval directory.
const (
	ConfigDirName    = ".muceval"
	ConfigFileName   = "config.yml"
	SynonymsFileName = "synonyms.yml"
	DefaultOutputDir = ".muceval/results"
)

// ErrConfigNotFound reports that no directory from the start upwards holds
// a config file.
var ErrConfigNotFound = errors.New("config not found")

// ConfigDir returns root/.muceval.
func ConfigDir(root string) string {
	return filepath.Join(root, ConfigDirName)
}

// ConfigPath returns root/.muceval/config.yml.
func ConfigPath(root string) string {
	return filepath.Join(root, ConfigDirName, ConfigFileName)
}

// SynonymsPath returns root/.muceval/synonyms.yml.
func SynonymsPath(root string) string {
	return filepath.Join(root, ConfigDirName, SynonymsFileName)
}

// BaseDirFor returns the directory relative input paths in the config file
// at path are resolved against: the project root for a file inside
// .muceval, otherwise the file's own directory.
func BaseDirFor(path string) string {
	dir := filepath.Dir(path)
	if filepath.Base(dir) == ConfigDirName {
		return filepath.Dir(dir)
	}
	return dir
}

// FindConfigPath walks from start (the working directory when empty) to the
// filesystem root and returns the first .muceval/config.yml it sees.
func FindConfigPath(start string) (string, error) {
	if strings.TrimSpace(start) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		start = wd
	}
	origin, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory: %w", err)
	}

	for dir := origin; ; dir = filepath.Dir(dir) {
		candidate := ConfigPath(dir)
		found, err := isConfigFile(candidate)
		if err != nil {
			return "", err
		}
		if found {
			return candidate, nil
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}
	return "", fmt.Errorf("no %s in %s or its parents: %w",
		filepath.Join(ConfigDirName, ConfigFileName), origin, ErrConfigNotFound)
}

func isConfigFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat config path %q: %w", path, err)
	case info.IsDir():
		return false, fmt.Errorf("config path %q is a directory", path)
	}
	return true, nil
}

// Resolve anchors a relative path at the config base directory.
func (c Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.BaseDir == "" {
		return path
	}
	return filepath.Join(c.BaseDir, path)
}
