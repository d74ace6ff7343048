package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"muceval/internal/runner"
)

// runScore is a test seam for the scoring pipeline.
var runScore = runner.RunAndWrite

func newScoreCommand(g *globalOptions) *cobra.Command {
	scoring := &scoringOptions{}
	output := &outputOptions{}
	cmd := &cobra.Command{
		Use:   "score [gold] [predictions]",
		Short: "Score predicted templates against gold templates",
		Long: `Score predicted templates against gold templates.

Paths default to input.gold and input.predictions from the config file.
The per-field metrics table is printed to stdout and run artifacts are
written under output.dir.`,
		Example: "  muceval score data/muc4_gold.json data/muc4_results.json --fuzzy --threshold 85",
		Args: usageArgs(func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected gold and predictions paths, got %d argument(s)", len(args))
			}
			return nil
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := loadConfig(cmd, g, scoring.apply, output.apply)
			if err != nil {
				return err
			}
			cfg := resolved.Config
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			logger.Debug("config resolved", "source", describeConfig(resolved))

			params := runner.RunParams{
				Config:        cfg,
				Stdout:        cmd.OutOrStdout(),
				VerboseWriter: cmd.OutOrStdout(),
				Logger:        logger,
			}
			if len(args) == 2 {
				params.GoldPath = absOrSelf(args[0])
				params.PredictionsPath = absOrSelf(args[1])
			}

			results, paths, err := runScore(cmd.Context(), params)
			if err != nil {
				if errors.Is(err, runner.ErrMissingInput) {
					return &usageError{cmd: cmd, err: err}
				}
				return err
			}
			if paths.RunID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\nRun %s written to %s\n", results.RunID, paths.RunDir())
			}
			return nil
		},
	}
	scoring.bind(cmd)
	output.bind(cmd)
	return cmd
}
