package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"muceval/internal/report"
)

func newCompareCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <base> <head>",
		Short: "Compare per-field metrics of two runs",
		Long: `Compare per-field metrics of two runs. Each run is a results.json path,
a run directory, or a run id under output.dir.`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}
			base, _, err := resolveRun(resolved.Config, args[0])
			if err != nil {
				return fmt.Errorf("base run: %w", err)
			}
			head, _, err := resolveRun(resolved.Config, args[1])
			if err != nil {
				return fmt.Errorf("head run: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Base %s  F1 %.2f\n", base.RunID, base.Score.Total.F1)
			fmt.Fprintf(out, "Head %s  F1 %.2f\n", head.RunID, head.Score.Total.F1)
			fmt.Fprintln(out)
			return report.WriteComparison(out, base.Score, head.Score)
		},
	}
}
