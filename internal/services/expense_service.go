package services

import (
	"context"
	"log/slog"

	"gastos/internal/amqp"
	"gastos/internal/core"
	applog "gastos/internal/log"
	"gastos/internal/store"
)

// Publisher announces saved collections. *amqp.Client implements it.
type Publisher interface {
	PublishCollectionSaved(ctx context.Context, msg *amqp.CollectionSavedMessage) error
}

// ExpenseService is what the presentation layer talks to: loading and saving
// the collection, creating records and computing the summary figures.
type ExpenseService struct {
	store     *store.RecordStore
	creator   core.Creator
	publisher Publisher
}

// NewExpenseService wires the service. publisher may be nil, in which case no
// notifications are sent.
func NewExpenseService(s *store.RecordStore, creator core.Creator, publisher Publisher) *ExpenseService {
	return &ExpenseService{
		store:     s,
		creator:   creator,
		publisher: publisher,
	}
}

// LoadAll returns the stored collection, the seed set on first run, or an
// empty collection if storage is unavailable.
func (s *ExpenseService) LoadAll(ctx context.Context) []core.Expense {
	return s.store.LoadAll(ctx)
}

// Load is LoadAll that also reports a failing backend, so callers can tell
// "nothing stored" apart from "storage unavailable".
func (s *ExpenseService) Load(ctx context.Context) ([]core.Expense, error) {
	res, err := s.store.Load(ctx)
	if err != nil {
		return []core.Expense{}, err
	}
	return res.Records, nil
}

// SaveAll persists the full collection and announces it. Failures are logged,
// never returned.
func (s *ExpenseService) SaveAll(ctx context.Context, records []core.Expense) {
	if err := s.store.Save(ctx, records); err != nil {
		slog.ErrorContext(ctx, "Failed to save expenses",
			applog.FieldComponent, applog.ComponentExpense,
			applog.FieldOperation, applog.OpSave,
			applog.FieldRecords, len(records),
			applog.FieldError, err)
		return
	}
	s.publishSaved(ctx, records)
}

// Create validates the input and returns a new record. It does not add the
// record to any collection.
func (s *ExpenseService) Create(amount, category, description string) (core.Expense, error) {
	return s.creator.Create(amount, category, description)
}

func (s *ExpenseService) Total(records []core.Expense) core.Money {
	return core.Total(records)
}

func (s *ExpenseService) TopCategory(records []core.Expense) (core.CategoryAmount, bool) {
	return core.TopCategory(records)
}

func (s *ExpenseService) publishSaved(ctx context.Context, records []core.Expense) {
	if s.publisher == nil {
		return
	}
	msg := amqp.NewCollectionSavedMessage(store.Namespace, store.Key, len(records), core.Total(records).Cents)
	if err := s.publisher.PublishCollectionSaved(ctx, msg); err != nil {
		// The collection is already stored; the notification is best effort.
		slog.WarnContext(ctx, "Failed to publish collection saved message",
			applog.FieldComponent, applog.ComponentExpense,
			applog.FieldOperation, applog.OpPublish,
			applog.FieldError, err)
	}
}
