package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jacoelho/jsonschema"
	"github.com/jacoelho/jsonschema/internal/config"
	"github.com/jacoelho/jsonschema/internal/metrics"
	"github.com/jacoelho/jsonschema/internal/schemastore"
	"github.com/jacoelho/jsonschema/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(stderr io.Writer) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a schema over HTTP",
		Long: "Serves POST /validate for the configured schema. Configuration is read from\n" +
			"--config, falling back to JSONLINT_* environment variables.",
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadWithFallback(configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, stderr)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "jsonlint.yaml", "path to configuration file")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, stderr io.Writer) error {
	logger, err := config.NewLogger(cfg.Logging, stderr)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewWithRegistry(reg)

	holder, err := schemastore.New(schemastore.Config{
		Path:      cfg.Schema.Path,
		CheckMeta: cfg.Schema.CheckMeta,
		Options:   []jsonschema.Option{jsonschema.WithMaxDepth(cfg.Schema.MaxDepth)},
	}, logger)
	if err != nil {
		return fmt.Errorf("load schema: %w", err)
	}
	defer holder.Stop()
	collector.ObserveReload(nil)
	holder.OnReload(collector.ObserveReload)

	if cfg.Schema.Watch {
		if err := holder.WatchFile(); err != nil {
			return err
		}
	}

	routerCfg := server.Config{
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		RequestTimeout: cfg.Server.WriteTimeout,
		Metrics:        collector,
	}
	if cfg.Metrics.Enabled {
		routerCfg.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		routerCfg.MetricsPath = cfg.Metrics.Path
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.NewRouter(holder, logger, routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Str("schema", holder.Path()).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
