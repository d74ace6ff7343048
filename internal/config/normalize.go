package config

import "strings"

// Normalize canonicalizes enum spellings and fills empty settings with
// their defaults.
func Normalize(cfg *Config) {
	defaults := Default()
	cfg.Input.DocIDField = strings.TrimSpace(cfg.Input.DocIDField)
	cfg.Input.TemplateField = strings.TrimSpace(cfg.Input.TemplateField)
	if cfg.Input.DocIDField == "" {
		cfg.Input.DocIDField = defaults.Input.DocIDField
	}
	if cfg.Input.TemplateField == "" {
		cfg.Input.TemplateField = defaults.Input.TemplateField
	}
	cfg.Input.Duplicates = lowerOr(cfg.Input.Duplicates, defaults.Input.Duplicates)
	cfg.Scoring.FuzzyAlgorithm = lowerOr(cfg.Scoring.FuzzyAlgorithm, defaults.Scoring.FuzzyAlgorithm)
	cfg.Scoring.DateMode = lowerOr(cfg.Scoring.DateMode, defaults.Scoring.DateMode)
	cfg.LogLevel = lowerOr(cfg.LogLevel, defaults.LogLevel)
	if cfg.Scoring.Workers == 0 {
		cfg.Scoring.Workers = defaults.Scoring.Workers
	}
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		cfg.Output.Dir = defaults.Output.Dir
	}

	seen := map[string]bool{}
	formats := make([]string, 0, len(cfg.Output.Formats))
	for _, format := range cfg.Output.Formats {
		format = strings.ToLower(strings.TrimSpace(format))
		if format == "" || seen[format] {
			continue
		}
		seen[format] = true
		formats = append(formats, format)
	}
	cfg.Output.Formats = formats
}

func lowerOr(value, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}
