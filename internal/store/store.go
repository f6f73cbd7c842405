// Package store persists the full expense collection as a single blob in a
// flat key-value preferences store.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gastos/internal/codec"
	"gastos/internal/core"
	applog "gastos/internal/log"
	"gastos/internal/prefs"
)

const (
	// Namespace is the preferences namespace the blob lives in.
	Namespace = "expense_prefs"
	// Key is the key the blob is stored under.
	Key = "expenses"
)

// LoadResult describes what Load found.
type LoadResult struct {
	Records []core.Expense
	// Dropped counts stored fragments that could not be parsed.
	Dropped int
	// Seeded is true when nothing was stored and the seed set was returned.
	Seeded bool
}

// RecordStore reads and writes the expense collection. It holds no reference
// to the caller's slice between calls.
type RecordStore struct {
	mu     sync.Mutex
	prefs  prefs.Store
	logger *slog.Logger
}

func New(p prefs.Store, logger *slog.Logger) *RecordStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordStore{
		prefs:  p,
		logger: logger.With(applog.FieldComponent, applog.ComponentStore),
	}
}

// Load reads the stored collection. An absent or empty blob yields the seed
// set. Malformed fragments are dropped and counted. Only a failing backend
// produces an error.
func (s *RecordStore) Load(ctx context.Context) (LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, ok, err := s.prefs.GetString(ctx, Namespace, Key)
	if err != nil {
		return LoadResult{}, fmt.Errorf("read %s/%s: %w", Namespace, Key, err)
	}
	if !ok || blob == "" {
		s.logger.InfoContext(ctx, "No stored expenses, using seed set", applog.FieldOperation, applog.OpLoad)
		return LoadResult{Records: core.SeedExpenses(), Seeded: true}, nil
	}

	res := codec.Decode(blob)
	if res.Dropped > 0 {
		s.logger.WarnContext(ctx, "Dropped malformed stored expenses",
			applog.FieldOperation, applog.OpLoad,
			applog.FieldDropped, res.Dropped,
			applog.FieldRecords, len(res.Records))
	}
	records := res.Records
	if records == nil {
		records = []core.Expense{}
	}
	return LoadResult{Records: records, Dropped: res.Dropped}, nil
}

// Save replaces the stored blob with the serialization of records.
func (s *RecordStore) Save(ctx context.Context, records []core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.prefs.PutString(ctx, Namespace, Key, codec.Encode(records)); err != nil {
		return fmt.Errorf("write %s/%s: %w", Namespace, Key, err)
	}
	s.logger.DebugContext(ctx, "Expenses saved",
		applog.FieldOperation, applog.OpSave,
		applog.FieldRecords, len(records))
	return nil
}

// LoadAll is Load without an error: a failing backend is logged and yields an
// empty collection. The seed is only used when storage answered "nothing
// stored", so a later save cannot replace real data with it.
func (s *RecordStore) LoadAll(ctx context.Context) []core.Expense {
	res, err := s.Load(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load expenses",
			applog.FieldOperation, applog.OpLoad,
			applog.FieldError, err)
		return []core.Expense{}
	}
	return res.Records
}

// SaveAll is Save without an error; failures are logged.
func (s *RecordStore) SaveAll(ctx context.Context, records []core.Expense) {
	if err := s.Save(ctx, records); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save expenses",
			applog.FieldOperation, applog.OpSave,
			applog.FieldRecords, len(records),
			applog.FieldError, err)
	}
}
