// Package cli provides common CLI initialization utilities shared by
// cmd/gastos and cmd/gastos-worker.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"gastos/internal/amqp"
	"gastos/internal/backend"
	"gastos/internal/config"
	applog "gastos/internal/log"
)

// SetupLogger builds the process logger for the given LOG_LEVEL value and
// makes it the slog default.
func SetupLogger(level string) *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Level = applog.ParseLevel(level)
	logger := applog.New(cfg)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitPrimaryStore opens the configured preferences backend, exiting the
// process on failure.
func InitPrimaryStore(ctx context.Context, logger *slog.Logger, cfg *config.Config) *backend.BackendResult {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.Error("Failed to initialize preferences backend", "error", err, applog.FieldBackend, cfg.PrefsBackend)
		os.Exit(1)
	}
	return res
}

// InitSourceStore opens the primary backend without the read cache, for the
// worker that copies from it. It exits the process on failure.
func InitSourceStore(ctx context.Context, logger *slog.Logger, cfg *config.Config) *backend.BackendResult {
	bcfg, err := backend.SourceFromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.Error("Failed to initialize source backend", "error", err, applog.FieldBackend, cfg.PrefsBackend)
		os.Exit(1)
	}
	return res
}

// ValidateWorkerConfig checks what the mirror worker needs on top of the
// common configuration: a broker, a mirror, and a source shared with the
// server process.
func ValidateWorkerConfig(cfg *config.Config) error {
	var problems []string
	if cfg.AMQPURL == "" {
		problems = append(problems, "AMQP_URL is required")
	}
	if cfg.MirrorBackend == "" {
		problems = append(problems, "MIRROR_BACKEND is required")
	}
	if cfg.PrefsBackend == "memory" {
		problems = append(problems, "PREFS_BACKEND=memory is private to the server process and cannot be mirrored")
	}
	if len(problems) > 0 {
		return fmt.Errorf("worker configuration invalid:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// InitMirrorStore opens the mirror backend, or returns nil when none is
// configured. It exits the process on failure.
func InitMirrorStore(ctx context.Context, logger *slog.Logger, cfg *config.Config) *backend.BackendResult {
	bcfg, ok, err := backend.MirrorFromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid mirror backend configuration", "error", err)
		os.Exit(1)
	}
	if !ok {
		return nil
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		logger.Error("Failed to initialize mirror backend", "error", err, applog.FieldBackend, cfg.MirrorBackend)
		os.Exit(1)
	}
	return res
}

// InitAMQP connects to the broker. It returns nil when no AMQP URL is set.
func InitAMQP(cfg *config.Config) (*amqp.Client, error) {
	if cfg.AMQPURL == "" {
		return nil, nil
	}
	return amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// The returned context is cancelled once cleanup has run, and done is closed
// right after. cleanup gets a context bounded by timeout.
func GracefulShutdown(logger *slog.Logger, timeout time.Duration, cleanup func(context.Context)) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
		defer shutdownCancel()

		if cleanup != nil {
			cleanup(shutdownCtx)
		}
		cancel()

		if shutdownCtx.Err() != nil {
			logger.Warn("Shutdown timeout reached")
		} else {
			logger.Info("Shutdown complete")
		}
	}()

	return ctx, done
}

// WaitForShutdown blocks until the context is cancelled and shutdown is done.
func WaitForShutdown(ctx context.Context, done <-chan struct{}) {
	<-ctx.Done()
	<-done
}
