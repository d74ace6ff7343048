package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"muceval/internal/config"
)

func newInitCommand() *cobra.Command {
	var dir string
	var yes bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold .muceval/config.yml and a synonym table",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := dir
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("init: %w", err)
				}
				root = wd
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}

			out := cmd.OutOrStdout()
			reader := bufio.NewReader(cmd.InOrStdin())
			if !yes {
				ok, err := confirm(reader, out, fmt.Sprintf("Initialize muceval config in %s?", config.ConfigDir(root)), true)
				if err != nil {
					return fmt.Errorf("init: %w", err)
				}
				if !ok {
					return fmt.Errorf("init cancelled")
				}
			}

			configPath, err := config.Scaffold(root)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			fmt.Fprintf(out, "Wrote %s\n", configPath)
			fmt.Fprintf(out, "Wrote %s\n", config.SynonymsPath(root))

			if !isGitRoot(root) {
				return nil
			}
			ignore := yes
			if !yes {
				if ignore, err = confirm(reader, out, "Add results folder to .gitignore?", true); err != nil {
					return fmt.Errorf("init: %w", err)
				}
			}
			if !ignore {
				return nil
			}
			updated, err := addGitignoreEntry(root, config.DefaultOutputDir)
			if err != nil {
				return fmt.Errorf("init: update .gitignore: %w", err)
			}
			if updated {
				fmt.Fprintf(out, "Updated %s\n", filepath.Join(root, ".gitignore"))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to initialize (default: working directory)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Accept every prompt")
	return cmd
}

func isGitRoot(root string) bool {
	_, err := os.Stat(filepath.Join(root, ".git"))
	return err == nil
}
