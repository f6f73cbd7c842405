package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"gastos/internal/amqp"
	"gastos/internal/app"
	"gastos/internal/backend"
	"gastos/internal/cli"
	"gastos/internal/core"
	apphttp "gastos/internal/http"
	applog "gastos/internal/log"
	"gastos/internal/services"
	"gastos/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger.Logger)

	ctx := context.Background()
	prefsStore := cli.InitPrimaryStore(ctx, logger.Logger, cfg)

	var publisher services.Publisher
	amqpClient, err := cli.InitAMQP(cfg)
	if err != nil {
		logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without notifications", applog.FieldError, err)
	} else if amqpClient != nil {
		publisher = amqpClient
		logger.InfoContext(ctx, "Initialized AMQP client",
			"exchange", cfg.AMQPExchange,
			"queue", cfg.AMQPQueue)
	}

	recordStore := store.New(prefsStore.Store, logger.Logger)
	svc := services.NewExpenseService(recordStore, core.Creator{}, publisher)
	state := app.NewState(svc)
	state.Load(ctx)

	srv := apphttp.NewServer(":"+cfg.Port, state, logger, apphttp.Options{})

	shutdownCtx, done := cli.GracefulShutdown(logger.Logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.ErrorContext(ctx, "Server shutdown error", applog.FieldError, err)
		}
		closeClient(ctx, logger, amqpClient)
		if err := backend.CloseAll(prefsStore); err != nil {
			logger.ErrorContext(ctx, "Backend cleanup error", applog.FieldError, err)
		}
	})

	logger.InfoContext(ctx, "Starting gastos server",
		"port", cfg.Port,
		applog.FieldBackend, cfg.PrefsBackend,
		applog.FieldRecords, len(state.Records()),
		"amqp_enabled", publisher != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.ErrorContext(ctx, "Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(shutdownCtx, done)
	logger.InfoContext(ctx, "Server stopped gracefully")
}

func closeClient(ctx context.Context, logger *applog.Logger, c *amqp.Client) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logger.WarnContext(ctx, "AMQP close error", applog.FieldError, err)
	}
}
