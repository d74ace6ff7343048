// Package reportserver serves the reports of finished runs over HTTP.
package reportserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Config captures the settings for serving run reports.
type Config struct {
	Addr string
	// OutputDir holds one directory per run, each with a results.json.
	OutputDir string
	// DBPath optionally exposes a DuckDB export for download.
	DBPath string
	Logger *slog.Logger
	// Ready, when set, receives the bound address once the listener is open.
	Ready func(addr string)
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

// Serve listens on cfg.Addr and serves until ctx is cancelled, then shuts
// down gracefully. A port of 0 picks a free port.
func Serve(ctx context.Context, cfg Config) error {
	if ctx == nil {
		return errors.New("reportserver: context is nil")
	}
	if cfg.Addr == "" {
		return errors.New("reportserver: addr is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("reportserver: listen %s: %w", cfg.Addr, err)
	}
	addr := ln.Addr().String()
	cfg.logger().Info("serving reports", "addr", addr, "output_dir", cfg.OutputDir)
	if cfg.Ready != nil {
		cfg.Ready(addr)
	}

	server := &http.Server{Handler: handler, ReadHeaderTimeout: readHeaderTimeout}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
