// Package config loads the muceval configuration file and environment
// overlay.
package config

// Config is the full evaluation configuration.
type Config struct {
	Version      int               `yaml:"version"`
	Input        InputConfig       `yaml:"input"`
	Scoring      ScoringConfig     `yaml:"scoring"`
	Synonyms     map[string]string `yaml:"synonyms,omitempty"`
	SynonymsFile string            `yaml:"synonyms_file,omitempty"`
	Output       OutputConfig      `yaml:"output"`
	LogLevel     string            `yaml:"log_level"`

	// BaseDir anchors relative paths. It is the repository root for file
	// based configs and the working directory otherwise.
	BaseDir string `yaml:"-"`
}

// InputConfig describes the input collections.
type InputConfig struct {
	Gold          string `yaml:"gold,omitempty"`
	Predictions   string `yaml:"predictions,omitempty"`
	DocIDField    string `yaml:"doc_id_field"`
	TemplateField string `yaml:"template_field"`
	Duplicates    string `yaml:"duplicate_predictions"`
}

// ScoringConfig controls normalization and matching.
type ScoringConfig struct {
	Fuzzy          bool    `yaml:"use_fuzzy"`
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
	FuzzyAlgorithm string  `yaml:"fuzzy_algorithm"`
	DateMode       string  `yaml:"date_mode"`
	Workers        int     `yaml:"workers"`
}

// OutputConfig controls what a run writes.
type OutputConfig struct {
	Dir     string   `yaml:"dir"`
	Formats []string `yaml:"formats"`
	Verbose bool     `yaml:"verbose"`
	NoColor bool     `yaml:"no_color"`
	DuckDB  string   `yaml:"duckdb,omitempty"`
}

// Output formats written to the run directory.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatHTML = "html"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Version: 1,
		Input: InputConfig{
			DocIDField:    "doc_id",
			TemplateField: "filledTemplate",
			Duplicates:    "last_wins",
		},
		Scoring: ScoringConfig{
			FuzzyThreshold: 90,
			FuzzyAlgorithm: "indel",
			DateMode:       "permissive",
			Workers:        1,
		},
		Output: OutputConfig{
			Dir:     DefaultOutputDir,
			Formats: []string{FormatText, FormatJSON, FormatHTML},
		},
		LogLevel: "info",
	}
}
