package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hirosato/smartrt/internal/api/handlers"
	"github.com/hirosato/smartrt/internal/app"
	envconfig "github.com/hirosato/smartrt/internal/common/config"
	"github.com/hirosato/smartrt/internal/domain/mcp"
	"github.com/hirosato/smartrt/internal/platform/httpserver"
)

const shutdownTimeout = 10 * time.Second

// main serves the dashboard API, the MCP endpoint and Prometheus metrics from one process.
// Background letter drafts are allowed to finish before it exits.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "smartrt: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config, err := envconfig.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.ResolveSecrets(ctx, config, logger); err != nil {
		return err
	}

	access, err := newAccessLogger(config)
	if err != nil {
		return fmt.Errorf("failed to create access logger: %w", err)
	}
	defer func() { _ = access.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a, err := app.New(ctx, config, logger, app.Options{Registerer: reg, ZapLogger: access})
	if err != nil {
		return err
	}

	registry, err := a.MCPRegistry(ctx)
	if err != nil {
		return err
	}
	mcpHandler := handlers.NewMCPHandler(mcp.NewService(logger, registry), !config.IsProd())

	router := httpserver.NewRouter(a.Routes, a.Wrap, logger, access, map[string]http.Handler{
		"/metrics": promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		"/mcp":     httpserver.Adapt("/mcp", mcpHandler.Handle, logger),
	})
	srv := httpserver.New(config.HTTPAddr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting SmartRT server", "addr", config.HTTPAddr, "environment", config.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down SmartRT server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)

		a.Assist.Wait()
		return err
	})

	return g.Wait()
}

func newAccessLogger(config *envconfig.Config) (*zap.Logger, error) {
	if config.IsProd() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
