package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MUCEVAL_"

// envOverlay lists the settings that can be overridden from the
// environment. Unset variables leave the pointers nil.
type envOverlay struct {
	Fuzzy          *bool    `env:"FUZZY"`
	FuzzyThreshold *float64 `env:"FUZZY_THRESHOLD"`
	FuzzyAlgorithm *string  `env:"FUZZY_ALGORITHM"`
	DateMode       *string  `env:"DATE_MODE"`
	Workers        *int     `env:"WORKERS"`
	LogLevel       *string  `env:"LOG_LEVEL"`
	OutputDir      *string  `env:"OUTPUT_DIR"`
	Verbose        *bool    `env:"VERBOSE"`
	NoColor        *bool    `env:"NO_COLOR"`
	SynonymsFile   *string  `env:"SYNONYMS_FILE"`
}

// ApplyEnv overlays MUCEVAL_* variables onto cfg. A nil environ reads the
// process environment.
func ApplyEnv(cfg *Config, environ map[string]string) error {
	var overlay envOverlay
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&overlay, opts); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if overlay.Fuzzy != nil {
		cfg.Scoring.Fuzzy = *overlay.Fuzzy
	}
	if overlay.FuzzyThreshold != nil {
		cfg.Scoring.FuzzyThreshold = *overlay.FuzzyThreshold
	}
	if overlay.FuzzyAlgorithm != nil {
		cfg.Scoring.FuzzyAlgorithm = *overlay.FuzzyAlgorithm
	}
	if overlay.DateMode != nil {
		cfg.Scoring.DateMode = *overlay.DateMode
	}
	if overlay.Workers != nil {
		cfg.Scoring.Workers = *overlay.Workers
	}
	if overlay.LogLevel != nil {
		cfg.LogLevel = *overlay.LogLevel
	}
	if overlay.OutputDir != nil {
		cfg.Output.Dir = *overlay.OutputDir
	}
	if overlay.Verbose != nil {
		cfg.Output.Verbose = *overlay.Verbose
	}
	if overlay.NoColor != nil {
		cfg.Output.NoColor = *overlay.NoColor
	}
	if overlay.SynonymsFile != nil {
		cfg.SynonymsFile = *overlay.SynonymsFile
		cfg.Synonyms = nil
	}
	return nil
}
