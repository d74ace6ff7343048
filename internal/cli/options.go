package cli

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"muceval/internal/config"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	noColor    bool
}

func (g *globalOptions) bind(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "Path to config file (default: search for .muceval/config.yml)")
	flags.StringVar(&g.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	flags.BoolVar(&g.noColor, "no-color", false, "Disable colored output")
}

// scoringOptions are the flags that select how values are compared.
type scoringOptions struct {
	fuzzy         bool
	threshold     float64
	algorithm     string
	dateMode      string
	synonyms      string
	duplicates    string
	workers       int
	docIDField    string
	templateField string
}

func (s *scoringOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVar(&s.fuzzy, "fuzzy", false, "Accept approximate matches above the threshold")
	flags.Float64Var(&s.threshold, "threshold", 90, "Fuzzy similarity threshold (0-100)")
	flags.StringVar(&s.algorithm, "algorithm", "", "Fuzzy similarity: indel|levenshtein")
	flags.StringVar(&s.dateMode, "date-mode", "", "Date recognition: permissive|strict|off")
	flags.StringVar(&s.synonyms, "synonyms", "", "Synonym table file (YAML or JSON)")
	flags.StringVar(&s.duplicates, "duplicates", "", "Repeated prediction ids: last_wins|reject")
	flags.IntVar(&s.workers, "workers", 1, "Documents scored concurrently")
	flags.StringVar(&s.docIDField, "doc-id-field", "", "Record key holding the document id")
	flags.StringVar(&s.templateField, "template-field", "", "Prediction key holding the filled template")
}

func (s *scoringOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("fuzzy") {
		cfg.Scoring.Fuzzy = s.fuzzy
	}
	if flags.Changed("threshold") {
		cfg.Scoring.FuzzyThreshold = s.threshold
	}
	if flags.Changed("algorithm") {
		cfg.Scoring.FuzzyAlgorithm = s.algorithm
	}
	if flags.Changed("date-mode") {
		cfg.Scoring.DateMode = s.dateMode
	}
	if flags.Changed("synonyms") {
		cfg.SynonymsFile = absOrSelf(s.synonyms)
		cfg.Synonyms = nil
	}
	if flags.Changed("duplicates") {
		cfg.Input.Duplicates = s.duplicates
	}
	if flags.Changed("workers") {
		cfg.Scoring.Workers = s.workers
	}
	if flags.Changed("doc-id-field") {
		cfg.Input.DocIDField = s.docIDField
	}
	if flags.Changed("template-field") {
		cfg.Input.TemplateField = s.templateField
	}
}

// outputOptions are the flags that select where results go.
type outputOptions struct {
	verbose bool
	dir     string
	formats []string
	duckdb  string
}

func (o *outputOptions) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "Stream per-document diagnostics")
	flags.StringVar(&o.dir, "output-dir", "", "Directory for run artifacts")
	flags.StringSliceVar(&o.formats, "format", nil, "Artifacts to write: text,json,html (empty to skip)")
	flags.StringVar(&o.duckdb, "duckdb", "", "Append the run to a DuckDB database")
}

func (o *outputOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Output.Verbose = o.verbose
	}
	if flags.Changed("output-dir") {
		cfg.Output.Dir = absOrSelf(o.dir)
	}
	if flags.Changed("format") {
		cfg.Output.Formats = cleanFormats(o.formats)
	}
	if flags.Changed("duckdb") {
		cfg.Output.DuckDB = absOrSelf(o.duckdb)
	}
}

type configOverlay func(cmd *cobra.Command, cfg *config.Config)

// loadConfig resolves the effective config: defaults, then the config file,
// then MUCEVAL_* variables, then flags.
func loadConfig(cmd *cobra.Command, g *globalOptions, overlays ...configOverlay) (config.Resolved, error) {
	resolved, err := config.LoadOrDefault(g.configPath, nil)
	if err != nil {
		return config.Resolved{}, err
	}
	cfg := &resolved.Config
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if cmd.Flags().Changed("no-color") {
		cfg.Output.NoColor = g.noColor
	}
	for _, overlay := range overlays {
		overlay(cmd, cfg)
	}
	config.Normalize(cfg)
	if err := config.Validate(cfg); err != nil {
		return config.Resolved{}, err
	}
	return resolved, nil
}

// newLogger builds the structured logger commands report progress on.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	parsed, err := config.ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parsed})), nil
}

// absOrSelf anchors flag paths at the working directory rather than the
// config's base directory.
func absOrSelf(path string) string {
	if strings.TrimSpace(path) == "" {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func cleanFormats(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, format := range formats {
		if format = strings.TrimSpace(format); format != "" {
			out = append(out, format)
		}
	}
	return out
}

func describeConfig(resolved config.Resolved) string {
	if resolved.Path == "" {
		return "defaults"
	}
	return resolved.Path
}
