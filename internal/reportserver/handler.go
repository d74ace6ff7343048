package reportserver

import (
	"errors"
	"log/slog"
	"net/http"

	"muceval/internal/report"
	"muceval/internal/runner"
)

// NewHandler builds the HTTP handler for the run index, run reports and
// the optional DuckDB file.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.OutputDir == "" {
		return nil, errors.New("reportserver: output dir is required")
	}
	logger := cfg.logger()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", serveIndex(cfg.OutputDir, logger))
	mux.HandleFunc("GET /runs/{id}", serveRunReport(cfg.OutputDir, logger))
	mux.HandleFunc("GET /runs/{id}/results.json", serveRunResults(cfg.OutputDir))
	if cfg.DBPath != "" {
		mux.Handle("/data/db.duckdb", serveDatabase(cfg.DBPath))
	}
	return mux, nil
}

// serveIndex lists every run in the output directory.
func serveIndex(dir string, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := listRuns(dir)
		if err != nil {
			logger.Error("list runs", "error", err)
			http.Error(w, "failed to list runs", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexPage(runs).Render(r.Context(), w); err != nil {
			logger.Error("render index", "error", err)
		}
	}
}

// serveRunReport renders the HTML report of one run.
func serveRunReport(dir string, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, err := resultsPath(dir, r.PathValue("id"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		results, err := runner.LoadResults(path)
		if err != nil {
			logger.Error("load run", "path", path, "error", err)
			http.Error(w, "failed to load run", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := report.Page(runner.ReportMeta(results), results.Score).Render(r.Context(), w); err != nil {
			logger.Error("render run", "run_id", results.RunID, "error", err)
		}
	}
}

// serveRunResults serves the raw results.json of one run.
func serveRunResults(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path, err := resultsPath(dir, r.PathValue("id"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, path)
	}
}

// serveDatabase serves the DuckDB export from disk.
func serveDatabase(dbPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, dbPath)
	})
}
