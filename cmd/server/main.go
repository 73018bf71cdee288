package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"character-crud-demo/backend/internal/service"
	"character-crud-demo/backend/pkg/config"
	"character-crud-demo/backend/pkg/di"
	"character-crud-demo/backend/pkg/logger"
	"character-crud-demo/backend/pkg/observability"
	"character-crud-demo/backend/pkg/router"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()

	// Initialize structured logger
	logConfig := logger.DefaultConfig()
	logConfig.Level = cfg.Logging.Level
	logConfig.JSON = cfg.Logging.Format != "text"

	log := logger.New(logConfig)
	logger.SetGlobal(log)

	if err := run(cfg, log); err != nil {
		log.LogError(err, "Server stopped with error")
		os.Exit(1)
	}
	log.Info("Server exited gracefully")
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Observability.TracingEnabled {
		shutdownTracing, err := observability.SetupTracing(cfg.Observability.ServiceName, os.Stdout)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				log.LogError(err, "Failed to flush traces")
			}
		}()
	}

	container, err := di.New(cfg, log)
	if err != nil {
		return err
	}
	defer container.Metrics.Shutdown(context.Background())

	if cfg.Seed.Enabled {
		seeded := container.CharacterService.Seed(ctx, service.DefaultSeed()...)
		log.Info("Seeded characters", "count", len(seeded))
	}

	r := router.New(container)
	r.SetupRoutes()

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r.Engine,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		container.Health.Run(gctx)
		return nil
	})
	g.Go(func() error {
		container.RateLimiter.Run(gctx)
		return nil
	})
	g.Go(func() error {
		log.Info("Server running", "addr", "http://"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
