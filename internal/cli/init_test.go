package cli

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"gastos/internal/config"
	"gastos/internal/prefs/cached"
	"gastos/internal/prefs/memory"
)

func TestSetupLoggerLevel(t *testing.T) {
	logger := SetupLogger("debug")
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug logging to be enabled")
	}

	logger = SetupLogger("error")
	if logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatal("expected warn to be filtered at error level")
	}
	if slog.Default() != logger.Logger {
		t.Fatal("SetupLogger should install the logger as the default")
	}
}

func TestInitAMQPDisabled(t *testing.T) {
	client, err := InitAMQP(&config.Config{})
	if err != nil || client != nil {
		t.Fatalf("expected no client without AMQP URL, got %v, %v", client, err)
	}
}

func TestInitStores(t *testing.T) {
	logger := slog.Default()
	cfg := &config.Config{PrefsBackend: "memory", MirrorBackend: "file", PrefsFilePath: t.TempDir() + "/mirror.yaml"}

	primary := InitPrimaryStore(context.Background(), logger, cfg)
	if primary == nil || primary.Store == nil {
		t.Fatal("expected primary store")
	}
	mirror := InitMirrorStore(context.Background(), logger, cfg)
	if mirror == nil || mirror.Store == nil {
		t.Fatal("expected mirror store")
	}

	cfg.MirrorBackend = ""
	if InitMirrorStore(context.Background(), logger, cfg) != nil {
		t.Fatal("expected no mirror when none is configured")
	}
}

func TestValidateWorkerConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{"valid", config.Config{AMQPURL: "amqp://localhost", MirrorBackend: "file", PrefsBackend: "sqlite"}, ""},
		{"no broker", config.Config{MirrorBackend: "file", PrefsBackend: "sqlite"}, "AMQP_URL is required"},
		{"no mirror", config.Config{AMQPURL: "amqp://localhost", PrefsBackend: "sqlite"}, "MIRROR_BACKEND is required"},
		{"memory source", config.Config{AMQPURL: "amqp://localhost", MirrorBackend: "file", PrefsBackend: "memory"}, "PREFS_BACKEND=memory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWorkerConfig(&tt.cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestInitSourceStoreSkipsCache(t *testing.T) {
	cfg := &config.Config{PrefsBackend: "memory", CacheTTL: time.Minute, CacheSize: 4}

	source := InitSourceStore(context.Background(), slog.Default(), cfg)
	t.Cleanup(func() { _ = source.Close() })
	if _, ok := source.Store.(*memory.Store); !ok {
		t.Fatalf("expected the uncached backend, got %T", source.Store)
	}

	primary := InitPrimaryStore(context.Background(), slog.Default(), cfg)
	t.Cleanup(func() { _ = primary.Close() })
	if _, ok := primary.Store.(*cached.Store); !ok {
		t.Fatalf("expected the server store to be cached, got %T", primary.Store)
	}
}
