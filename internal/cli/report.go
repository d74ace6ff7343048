package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"muceval/internal/report"
	"muceval/internal/runner"
)

func newReportCommand(g *globalOptions) *cobra.Command {
	var outPath string
	var text bool
	cmd := &cobra.Command{
		Use:   "report <run>",
		Short: "Render the report of a finished run",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}
			results, resultsPath, err := resolveRun(resolved.Config, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if text {
				if err := runner.PrintSummary(out, results, false, false); err != nil {
					return err
				}
				if len(results.Score.Diagnostics) == 0 {
					return nil
				}
				fmt.Fprintln(out, "\nDiagnostics:")
				return report.WriteDiagnostics(out, results.Score.Diagnostics)
			}
			target := outPath
			if target == "" {
				target = filepath.Join(filepath.Dir(resultsPath), runner.HTMLReportFile)
			}
			if err := runner.WriteHTMLReport(cmd.Context(), target, results); err != nil {
				return err
			}
			fmt.Fprintf(out, "Wrote %s\n", target)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "HTML output path (default: report.html next to results.json)")
	cmd.Flags().BoolVar(&text, "text", false, "Print the metrics table and diagnostics instead of writing HTML")
	return cmd
}
