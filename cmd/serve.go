// =============================================================================
// Purchase Order Generator - Serve Command
// =============================================================================
//
// COMMAND USAGE:
//   pogen serve [flags]
//
// FLAGS:
//   --addr : Listen address (overrides server.addr)
//   --csv  : CSV file to serve (overrides server.csv_path)
//
// The server shuts down gracefully on SIGINT or SIGTERM.
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/po-data-generator/internal/config"
	"github.com/ginjaninja78/po-data-generator/internal/metrics"
	"github.com/ginjaninja78/po-data-generator/internal/runner"
	"github.com/ginjaninja78/po-data-generator/internal/server"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	addr    string
	csvPath string
}

func newServeCmd(global *globalOptions) *cobra.Command {
	opts := &serveOptions{}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generated CSV over HTTP",
		Long: `Serve the generated purchase orders as a JSON API.

Endpoints include paginated and filtered order listings, lookups by PO number,
statistics, distinct vendors and departments, CSV download, regeneration and
Prometheus metrics. Run 'pogen serve' and open http://localhost:8000/ for the
full list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, global, opts)
		},
	}

	serveCmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default from config, :8000)")
	serveCmd.Flags().StringVar(&opts.csvPath, "csv", "", "CSV file to serve (default: the generated file)")

	return serveCmd
}

// servedPath returns the CSV file the server reads.
func servedPath(cfg *config.Config) string {
	if cfg.Server.CSVPath != "" {
		return cfg.Server.CSVPath
	}
	return filepath.Join(cfg.OutputDir, cfg.OutputFile)
}

func runServe(cmd *cobra.Command, global *globalOptions, opts *serveOptions) error {
	cfg, log, err := setup(cmd, global)
	if err != nil {
		return err
	}
	defer log.Sync()

	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.csvPath != "" {
		cfg.Server.CSVPath = opts.csvPath
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	run := runner.New(log, m)

	srv := server.New(server.Config{
		CSVPath:      servedPath(cfg),
		DefaultCount: cfg.DefaultCount,
		MaxCount:     cfg.MaxCount,
		Gatherer:     reg,
		Metrics:      m,
		Log:          log,
		Generate: func(count int) (runner.Result, error) {
			return run.Run(runner.Options{
				Count:      count,
				Seed:       cfg.Seed,
				OutputDir:  cfg.OutputDir,
				OutputFile: cfg.OutputFile,
				WriteXLSX:  cfg.WriteXLSX,
				WriteXML:   cfg.WriteXML,
			})
		},
	})

	httpServer := server.NewHTTPServer(cfg.Server.Addr, srv.Routes())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", httpServer.Addr), zap.String("csv", srv.CSVPath()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
