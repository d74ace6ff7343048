package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"muceval/internal/record"
)

func newValidateCommand(g *globalOptions) *cobra.Command {
	scoring := &scoringOptions{}
	return withScoringFlags(scoring, &cobra.Command{
		Use:   "validate [gold] [predictions]",
		Short: "Validate the config and, when given, the input files",
		Args:  usageArgs(cobra.MaximumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := loadConfig(cmd, g, scoring.apply)
			if err != nil {
				return fmt.Errorf("validation failed:\n%w", err)
			}
			cfg := resolved.Config
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config OK (%s)\n", describeConfig(resolved))

			gold := cfg.Resolve(cfg.Input.Gold)
			predictions := cfg.Resolve(cfg.Input.Predictions)
			if len(args) > 0 {
				gold = absOrSelf(args[0])
			}
			if len(args) > 1 {
				predictions = absOrSelf(args[1])
			}

			opts := record.LoadOptions{DocIDField: cfg.Input.DocIDField, TemplateField: cfg.Input.TemplateField}
			if gold != "" {
				records, err := record.LoadGold(gold, opts)
				if err != nil {
					return fmt.Errorf("validation failed:\n%w", err)
				}
				index := record.IndexGold(records)
				fmt.Fprintf(out, "Gold OK: %d templates across %d documents, %d fields\n", len(records), index.Len(), len(index.Fields()))
			}
			if predictions != "" {
				records, err := record.LoadPredictions(predictions, opts)
				if err != nil {
					return fmt.Errorf("validation failed:\n%w", err)
				}
				policy, err := record.ParseDuplicatePolicy(cfg.Input.Duplicates)
				if err != nil {
					return err
				}
				index, err := record.IndexPredictions(records, policy)
				if err != nil {
					return fmt.Errorf("validation failed:\n%w", err)
				}
				fmt.Fprintf(out, "Predictions OK: %d records across %d documents\n", len(records), index.Len())
				if duplicates := index.Duplicates(); len(duplicates) > 0 {
					fmt.Fprintf(out, "Warning: %d documents have repeated predictions; the last one wins\n", len(duplicates))
				}
			}
			return nil
		},
	})
}

// withScoringFlags binds the scoring flags to cmd.
func withScoringFlags(opts *scoringOptions, cmd *cobra.Command) *cobra.Command {
	opts.bind(cmd)
	return cmd
}
