package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"muceval/internal/reportserver"
)

// serveReports is a test seam for running the report server.
var serveReports = reportserver.Serve

func newServeCommand(g *globalOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reports of finished runs over HTTP",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				return usageErrorf(cmd, "missing --addr")
			}
			resolved, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}
			cfg := resolved.Config
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			outputDir := cfg.Resolve(cfg.Output.Dir)
			server := reportserver.Config{
				Addr:      addr,
				OutputDir: outputDir,
				DBPath:    cfg.Resolve(cfg.Output.DuckDB),
				Logger:    logger,
				Ready: func(bound string) {
					fmt.Fprintf(cmd.OutOrStdout(), "Serving runs from %s at http://%s\n", outputDir, bound)
				},
			}
			if err := serveReports(cmd.Context(), server); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:5000", "Address to listen on")
	return cmd
}
