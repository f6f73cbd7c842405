package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gastos/internal/cache"
	applog "gastos/internal/log"
	"gastos/internal/prefs/cached"
	gsheet "gastos/internal/prefs/google"
	"gastos/internal/prefs/memcached"
	"gastos/internal/prefs/memory"
	"gastos/internal/prefs/yamlfile"
	"gastos/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger.With(applog.FieldComponent, applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		res *BackendResult
		err error
	)
	switch config.Type {
	case MemoryBackend:
		res = &BackendResult{Store: memory.New()}
	case FileBackend:
		res = &BackendResult{Store: yamlfile.New(config.FilePath)}
	case SQLiteBackend:
		res, err = f.createSQLiteBackend(config)
	case MemcachedBackend:
		res, err = f.createMemcachedBackend(config)
	case SheetsBackend:
		res, err = f.createSheetsBackend(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
	if err != nil {
		return nil, err
	}

	f.logger.InfoContext(ctx, "Initialized preferences backend", applog.FieldBackend, config.Type.String())

	if config.CacheTTL > 0 {
		res = f.withCache(ctx, res, config)
	}
	return res, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}
	return &BackendResult{
		Store:   repo,
		Cleanup: repo.Close,
	}, nil
}

func (f *DefaultFactory) createMemcachedBackend(config Config) (*BackendResult, error) {
	store, err := memcached.New(config.MemcachedHosts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize memcached client: %w", err)
	}
	return &BackendResult{Store: store}, nil
}

func (f *DefaultFactory) createSheetsBackend(ctx context.Context, config Config) (*BackendResult, error) {
	store, err := gsheet.New(ctx, gsheet.Config{
		SpreadsheetID:      config.GoogleSpreadsheetID,
		ServiceAccountJSON: config.GoogleServiceAccountJSON,
		ServiceAccountFile: config.GoogleServiceAccountFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}
	return &BackendResult{Store: store}, nil
}

// withCache puts a read-through LRU in front of res. Expired entries are
// swept by a cache manager that the returned cleanup stops.
func (f *DefaultFactory) withCache(ctx context.Context, res *BackendResult, config Config) *BackendResult {
	lru := cache.NewLRUCache[string](config.CacheSize, config.CacheTTL)
	manager := cache.NewManager()
	manager.Register(lru)
	manager.StartCleanup(config.CacheTTL)

	f.logger.InfoContext(ctx, "Read cache enabled",
		"ttl", config.CacheTTL.String(),
		"size", config.CacheSize)

	inner := res.Cleanup
	return &BackendResult{
		Store: cached.New(res.Store, lru),
		Cleanup: func() error {
			manager.Stop()
			if inner != nil {
				return inner()
			}
			return nil
		},
	}
}

// CloseAll runs every cleanup and joins their errors.
func CloseAll(results ...*BackendResult) error {
	var errs []error
	for _, r := range results {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
