package cli

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"muceval/internal/ui/browse"
)

// runBrowser is a test seam for the interactive program.
var runBrowser = func(model tea.Model, in io.Reader, out io.Writer) error {
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(in), tea.WithOutput(out)).Run()
	return err
}

var errNotTerminal = errors.New("browse needs an interactive terminal; use \"muceval report --text\" instead")

func newBrowseCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <run>",
		Short: "Explore the diagnostics of a run interactively",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return errNotTerminal
			}
			resolved, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}
			results, _, err := resolveRun(resolved.Config, args[0])
			if err != nil {
				return err
			}
			model := browse.NewModel(results.Score, browse.Options{
				Title:   fmt.Sprintf("run %s", results.RunID),
				NoColor: resolved.Config.Output.NoColor,
			})
			if err := runBrowser(model, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			return nil
		},
	}
}
