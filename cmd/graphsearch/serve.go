package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/pdrpinto/graphsearch/internal/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var (
		addr        string
		maxSessions int
		maxSide     int
		createRate  float64
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP stepping server",
		Long: `Serves random maze sessions that a client advances one search step at a
time, plus /healthz and, when enabled, Prometheus metrics on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			options := []server.Option{
				server.WithLogger(a.logger),
				server.WithMaxSessions(maxSessions),
				server.WithMaxSide(maxSide),
			}
			if createRate > 0 {
				options = append(options, server.WithCreateRate(rate.Limit(createRate), max(1, int(createRate))))
			}
			if a.cfg.Server.Metrics {
				registry := prometheus.NewRegistry()
				registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				options = append(options, server.WithMetrics(registry))
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           server.New(options...).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, srv, a.logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().IntVar(&maxSessions, "max-sessions", server.DefaultMaxSessions, "maximum concurrently open sessions")
	cmd.Flags().IntVar(&maxSide, "max-side", server.DefaultMaxSide, "largest maze width or height a client may request")
	cmd.Flags().Float64Var(&createRate, "create-rate", 0, "sessions created per second (0 for unlimited)")
	return cmd
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown did not complete", slog.Any("error", err))
		return srv.Close()
	}
	if err := <-serverErrors; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
