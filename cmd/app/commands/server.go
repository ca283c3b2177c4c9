package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/allisson/configd/internal/app"
	"github.com/allisson/configd/internal/config"
	"github.com/allisson/configd/internal/metrics"
)

// serverRunner is the lifecycle shared by the API and metrics servers.
type serverRunner interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// RunServer starts the HTTP server with graceful shutdown support.
// Loads and validates configuration, prepares the storage directories and master key,
// then serves the API and, when enabled, the metrics endpoint. Blocks until receiving
// SIGINT/SIGTERM or until one server fails. Shutdown is bounded by SHUTDOWN_TIMEOUT_SECONDS.
func RunServer(ctx context.Context, version string) error {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Set Gin mode based on log level
	gin.SetMode(cfg.GetGinMode())

	// Create DI container
	container := app.NewContainer(cfg)

	logger := container.Logger()
	logger.Info("starting server",
		slog.String("version", version),
		slog.String("config_dir", cfg.ConfigDir),
	)

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	// Get HTTP server from container (this initializes all dependencies)
	server, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	// Get Metrics server from container
	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	if err := registerBuildInfo(container, cfg, version); err != nil {
		return err
	}

	runners := []serverRunner{server}
	if metricsServer != nil {
		runners = append(runners, metricsServer)
	}

	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return serve(ctx, cfg, logger, runners...)
}

// serve runs every server until ctx is cancelled or one of them fails, then shuts all
// of them down within cfg.ShutdownTimeout.
func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger, runners ...serverRunner) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, runner := range runners {
		g.Go(func() error {
			return runner.Start(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			logger.Info("shutdown signal received")
		} else {
			logger.Error("server error, initiating shutdown")
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		var shutdownErrors []error
		for _, runner := range runners {
			if err := runner.Shutdown(shutdownCtx); err != nil {
				shutdownErrors = append(shutdownErrors, err)
			}
		}
		return errors.Join(shutdownErrors...)
	})

	return g.Wait()
}

// registerBuildInfo publishes the build_info gauge when metrics are enabled.
func registerBuildInfo(container *app.Container, cfg *config.Config, version string) error {
	provider, err := container.MetricsProvider()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics provider: %w", err)
	}
	if provider == nil {
		return nil
	}

	return provider.RegisterBuildInfo(metrics.BuildInfo{
		Service:   cfg.ServiceName,
		Version:   version,
		Commit:    cfg.BuildCommit,
		BuildDate: cfg.BuildDate,
	})
}
