package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/0dillon/HNG1/internal/api"
	"github.com/0dillon/HNG1/internal/config"
	"github.com/0dillon/HNG1/internal/engine"
	"github.com/0dillon/HNG1/internal/store"
)

// readHeaderTimeout bounds slow-header clients.
const readHeaderTimeout = 10 * time.Second

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	ConfigPath string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the string analysis HTTP server.

Configuration comes from the optional --config YAML file, overridden by the
environment variables PORT, HOST, STRINGSVC_STORE, STRINGSVC_DSN and
STRINGSVC_LOG_LEVEL. The server shuts down gracefully on SIGINT or SIGTERM.

Example:
  stringsvc serve
  PORT=8080 stringsvc serve --config ./stringsvc.yaml --verbose`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to YAML config file")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	logger := newLogger(cfg, opts.Verbose, cmd.ErrOrStderr())
	slog.SetDefault(logger)
	gin.SetMode(gin.ReleaseMode)

	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.Address())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to listen", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", ln.Addr())
	if err := serve(ctx, cfg, logger, ln); err != nil {
		return WrapExitError(ExitFailure, "server error", err)
	}
	return nil
}

// serve runs the HTTP server on ln until ctx is cancelled, then drains
// in-flight requests within the configured shutdown timeout.
func serve(ctx context.Context, cfg config.Config, logger *slog.Logger, ln net.Listener) error {
	repo, closeRepo, err := openStore(cfg.Store)
	if err != nil {
		ln.Close()
		return err
	}
	defer func() {
		if closeErr := closeRepo(); closeErr != nil {
			logger.Error("error closing store", "error", closeErr)
		}
	}()

	eng := engine.New(repo, engine.WithLogger(logger))

	routerOpts := []api.Option{
		api.WithLogger(logger),
		api.WithRateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		routerOpts = append(routerOpts, api.WithMetrics(reg, cfg.Metrics.Path, storedGauge(eng, logger)))
	}

	srv := &http.Server{
		Handler:           api.NewRouter(eng, routerOpts...),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening",
			"addr", ln.Addr().String(),
			"store", cfg.Store.Backend,
			"metrics", cfg.Metrics.Enabled,
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", "timeout", cfg.ShutdownTimeout())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}

// openStore opens the configured backend and returns its close function.
func openStore(cfg config.StoreConfig) (engine.Repository, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		st, err := store.Open(cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return st, st.Close, nil
	case config.BackendMemory, "":
		m := store.NewMemory()
		return m, m.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// storedGauge samples the record count for the metrics endpoint.
func storedGauge(eng *engine.Engine, logger *slog.Logger) func() float64 {
	return func() float64 {
		n, err := eng.Count(context.Background())
		if err != nil {
			logger.Warn("count failed", "error", err)
			return 0
		}
		return float64(n)
	}
}

// newLogger builds the process logger from config. --verbose forces debug.
func newLogger(cfg config.Config, verbose bool, w io.Writer) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
