package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads, parses, normalizes, and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	cfg.BaseDir = BaseDirFor(path)
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes a config document on top of Default so omitted keys keep
// their defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	var trailing yaml.Node
	if err := decoder.Decode(&trailing); err != io.EOF {
		if err == nil {
			return Config{}, fmt.Errorf("parse config: multiple YAML documents are not supported")
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Resolved is a config together with the file it came from, if any.
type Resolved struct {
	Config Config
	Path   string
}

// LoadOrDefault loads an explicit config path, or searches upward from the
// working directory. When nothing is found the defaults apply, anchored at
// the working directory. The environment overlay is applied in both cases.
func LoadOrDefault(explicitPath string, environ map[string]string) (Resolved, error) {
	path := strings.TrimSpace(explicitPath)
	if path == "" {
		found, err := FindConfigPath("")
		switch {
		case err == nil:
			path = found
		case errors.Is(err, ErrConfigNotFound):
		default:
			return Resolved{}, err
		}
	}

	var cfg Config
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Resolved{}, fmt.Errorf("get working directory: %w", err)
		}
		cfg = Default()
		cfg.BaseDir = wd
	} else {
		abs, err := filepath.Abs(path)
		if err != nil {
			return Resolved{}, fmt.Errorf("resolve config path: %w", err)
		}
		path = abs
		if cfg, err = Load(path); err != nil {
			return Resolved{}, err
		}
	}

	if err := ApplyEnv(&cfg, environ); err != nil {
		return Resolved{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return Resolved{}, err
	}
	return Resolved{Config: cfg, Path: path}, nil
}
