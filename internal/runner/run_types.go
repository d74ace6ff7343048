package runner

import (
	"io"
	"log/slog"
	"time"

	"muceval/internal/config"
	"muceval/internal/normalize"
)

// RunDependencies allows injecting clocks, ids and parsers for a run.
type RunDependencies struct {
	RunID func() (string, error)
	Now   func() time.Time
	// DateParser replaces the parser selected by scoring.date_mode.
	DateParser normalize.DateParser
}

// RunParams configures a run invocation.
type RunParams struct {
	GoldPath        string
	PredictionsPath string
	Config          config.Config
	// Stdout receives the metrics table.
	Stdout io.Writer
	// VerboseWriter receives the per-document diagnostic stream.
	VerboseWriter io.Writer
	Logger        *slog.Logger
	Deps          RunDependencies
}
