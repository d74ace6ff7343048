package cli

import (
	"bufio"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"muceval/internal/runner"
)

func newNormalizeCommand(g *globalOptions) *cobra.Command {
	scoring := &scoringOptions{}
	var showRaw bool
	cmd := withScoringFlags(scoring, &cobra.Command{
		Use:   "normalize [value...]",
		Short: "Print the normalized form of values (stdin lines when none are given)",
		Example: `  muceval normalize "a Hand Grenade" "March 3, 1991"
  cat values.txt | muceval normalize --raw`,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := loadConfig(cmd, g, scoring.apply)
			if err != nil {
				return err
			}
			normalizer, _, err := runner.NewNormalizer(resolved.Config, nil, time.Now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			emit := func(raw string) {
				if showRaw {
					fmt.Fprintf(out, "%s\t%s\n", raw, normalizer.Normalize(raw))
					return
				}
				fmt.Fprintln(out, normalizer.Normalize(raw))
			}
			if len(args) > 0 {
				for _, raw := range args {
					emit(raw)
				}
				return nil
			}
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				emit(scanner.Text())
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			return nil
		},
	})
	cmd.Flags().BoolVar(&showRaw, "raw", false, "Print the input value before its normalized form")
	return cmd
}
