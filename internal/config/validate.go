package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"muceval/internal/match"
	"muceval/internal/normalize"
	"muceval/internal/record"
)

// Validate checks a config for correctness and referenced files.
func Validate(cfg *Config) error {
	issues := &issueCollector{}

	if cfg.Version == 0 {
		issues.add("version", "is required")
	} else if cfg.Version != 1 {
		issues.addf("version", "unsupported version %d", cfg.Version)
	}

	validateInput(cfg, issues.section("input"))
	validateScoring(cfg, issues.section("scoring"))
	validateSynonyms(cfg, issues.add)
	validateOutput(cfg, issues.section("output"))

	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		issues.add("log_level", err.Error())
	}

	return issues.err()
}

func validateInput(cfg *Config, add issueAdder) {
	if cfg.Input.DocIDField == cfg.Input.TemplateField {
		add("template_field", fmt.Sprintf("must differ from doc_id_field %q", cfg.Input.DocIDField))
	}
	if _, err := record.ParseDuplicatePolicy(cfg.Input.Duplicates); err != nil {
		add("duplicate_predictions", err.Error())
	}
	checkFile(cfg, "gold", cfg.Input.Gold, add)
	checkFile(cfg, "predictions", cfg.Input.Predictions, add)
}

func validateScoring(cfg *Config, add issueAdder) {
	if cfg.Scoring.FuzzyThreshold < 0 || cfg.Scoring.FuzzyThreshold > 100 {
		add("fuzzy_threshold", "must be between 0 and 100")
	}
	if _, err := match.ParseAlgorithm(cfg.Scoring.FuzzyAlgorithm); err != nil {
		add("fuzzy_algorithm", err.Error())
	}
	if _, err := normalize.ParseDateMode(cfg.Scoring.DateMode); err != nil {
		add("date_mode", err.Error())
	}
	if cfg.Scoring.Workers < 1 {
		add("workers", "must be >= 1")
	}
}

func validateSynonyms(cfg *Config, add issueAdder) {
	if len(cfg.Synonyms) > 0 && cfg.SynonymsFile != "" {
		add("synonyms", "cannot be combined with synonyms_file")
		return
	}
	if len(cfg.Synonyms) > 0 {
		if _, err := normalize.NewSynonyms(cfg.Synonyms); err != nil {
			add("synonyms", err.Error())
		}
		return
	}
	checkFile(cfg, "synonyms_file", cfg.SynonymsFile, add)
}

func validateOutput(cfg *Config, add issueAdder) {
	for i, format := range cfg.Output.Formats {
		switch format {
		case FormatText, FormatJSON, FormatHTML:
		default:
			add(fmt.Sprintf("formats[%d]", i), fmt.Sprintf("unsupported format %q (expected text|json|html)", format))
		}
	}
}

// checkFile flags a configured path that does not name a regular file.
func checkFile(cfg *Config, field, path string, add issueAdder) {
	if strings.TrimSpace(path) == "" {
		return
	}
	info, err := os.Stat(cfg.Resolve(path))
	if err != nil {
		add(field, fmt.Sprintf("file not found at %q", path))
		return
	}
	if info.IsDir() {
		add(field, fmt.Sprintf("path %q is a directory", path))
	}
}

// ParseLogLevel maps a level name onto slog levels.
func ParseLogLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (expected debug|info|warn|error)", value)
	}
	return level, nil
}

// SynonymTable builds the synonym table the config selects: inline entries,
// a synonym file, or the built-in table.
func (c Config) SynonymTable() (normalize.Synonyms, error) {
	if len(c.Synonyms) > 0 {
		return normalize.NewSynonyms(c.Synonyms)
	}
	if c.SynonymsFile != "" {
		return normalize.LoadSynonyms(c.Resolve(c.SynonymsFile))
	}
	return normalize.DefaultSynonyms(), nil
}
