package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// stdin is a test seam for commands that read input.
var stdin io.Reader = os.Stdin

// usageError marks failures caused by how the command was invoked.
type usageError struct {
	cmd *cobra.Command
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(cmd *cobra.Command, format string, args ...any) error {
	return &usageError{cmd: cmd, err: fmt.Errorf(format, args...)}
}

// usageArgs wraps a positional argument check so failures exit with
// ExitUsage.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{cmd: cmd, err: err}
		}
		return nil
	}
}

// Run executes the command line and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := newRootCommand(stdout, stderr)
	if len(args) == 0 {
		_ = root.Usage()
		return ExitUsage
	}
	root.SetArgs(args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	var usage *usageError
	if errors.As(err, &usage) {
		fmt.Fprintf(stderr, "Error: %v\n", usage.err)
		if usage.cmd != nil {
			fmt.Fprintln(stderr)
			usage.cmd.SetOut(stderr)
			_ = usage.cmd.Usage()
		}
		return ExitUsage
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitError
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	global := &globalOptions{}
	root := &cobra.Command{
		Use:   "muceval",
		Short: "Score extracted event templates against gold annotations",
		Long: `muceval scores predicted event templates against one or more gold
templates per document, reporting precision, recall and F1 per field.`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageErrorf(cmd, "a command is required")
			}
			return usageErrorf(cmd, "unknown command %q", args[0])
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{cmd: cmd, err: err}
	})
	root.CompletionOptions.DisableDefaultCmd = true
	global.bind(root)

	root.AddCommand(
		newScoreCommand(global),
		newValidateCommand(global),
		newNormalizeCommand(global),
		newCompareCommand(global),
		newReportCommand(global),
		newBrowseCommand(global),
		newServeCommand(global),
		newInitCommand(),
	)
	return root
}
