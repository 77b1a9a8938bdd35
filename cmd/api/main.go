package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"phonebook/internal/backend"
	"phonebook/internal/config"
	"phonebook/internal/logger"
	tracing "phonebook/internal/otel"
	"phonebook/internal/seed"
	"phonebook/internal/service"
)

// @title Phonebook API
// @version 1.0
// @description Contact directory: names and phone numbers with unique names.
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	store, err := backend.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("store_close_failed", zap.Error(err))
		}
	}()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	contacts := service.NewContactService(store.Repo)
	if cfg.Store.Seed {
		res, err := seed.Apply(ctx, contacts, seed.Default())
		if err != nil {
			return err
		}
		log.Info("store_seeded", zap.Int("created", res.Created), zap.Int("updated", res.Updated))
	}

	snapshots, err := backend.OpenSnapshots(ctx, cfg.MinIO, contacts)
	if err != nil {
		return err
	}
	if snapshots == nil {
		log.Info("snapshots_disabled", zap.String("reason", "MINIO_ENDPOINT not set"))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app, err := newApp(appDeps{
		cfg:       cfg,
		log:       log,
		registry:  reg,
		pinger:    store.Pinger,
		contacts:  contacts,
		snapshots: snapshots,
	})
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.Port
		log.Info("server_starting", zap.String("addr", addr), zap.String("store", store.Driver))
		if err := app.Listen(addr); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("server_shutting_down")
		return app.ShutdownWithTimeout(time.Duration(cfg.ShutdownTimeoutSec) * time.Second)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("server_stopped")
	return nil
}
