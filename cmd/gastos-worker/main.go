package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"gastos/internal/backend"
	"gastos/internal/cli"
	applog "gastos/internal/log"
	"gastos/internal/store"
	"gastos/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL")).WithComponent(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger.Logger)

	logger.InfoContext(context.Background(), "Starting gastos-worker")

	if err := cli.ValidateWorkerConfig(cfg); err != nil {
		logger.ErrorContext(context.Background(), "Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source := cli.InitSourceStore(ctx, logger.Logger, cfg)
	mirror := cli.InitMirrorStore(ctx, logger.Logger, cfg)
	defer func() {
		if err := backend.CloseAll(source, mirror); err != nil {
			logger.ErrorContext(context.Background(), "Backend cleanup error", applog.FieldError, err)
		}
	}()

	amqpClient, err := cli.InitAMQP(cfg)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirrorWorker := worker.NewMirrorWorker(source.Store, mirror.Store)

	// Saves made while the worker was down never produced a message we will see.
	if err := mirrorWorker.StartupSync(ctx, store.Namespace, store.Key); err != nil {
		logger.ErrorContext(ctx, "Startup sync failed", applog.FieldError, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeCollectionSaved(gctx, mirrorWorker.HandleCollectionSaved)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.InfoContext(gctx, "Shutting down worker", applog.FieldOperation, applog.OpShutdown)
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.ErrorContext(context.Background(), "Worker stopped with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.InfoContext(context.Background(), "Worker stopped")
}
