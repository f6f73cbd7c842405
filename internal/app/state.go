// Package app holds the presentation state: the live expense collection and
// which of the two screens is showing.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"gastos/internal/core"
	applog "gastos/internal/log"
	"gastos/internal/services"
)

// View selects one of the two screens.
type View string

const (
	ViewList        View = "list"
	ViewTopCategory View = "top_category"
)

var ErrUnknownView = errors.New("unknown view")

// ParseView maps a wire value to a View.
func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewList, ViewTopCategory:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// Screen is what the active view shows. Records is only set on the list
// screen, Top only on the top category screen.
type Screen struct {
	View    View
	Records []core.Expense
	Total   core.Money
	Top     core.CategoryAmount
	HasTop  bool
}

// State owns the live collection. Every mutation replaces the persisted
// collection through the service, except while the last load failed: the
// live collection is then not what storage holds, so nothing is written until
// a reload succeeds.
type State struct {
	mu      sync.RWMutex
	svc     *services.ExpenseService
	records []core.Expense
	view    View
	stale   bool
}

func NewState(svc *services.ExpenseService) *State {
	return &State{svc: svc, view: ViewList, records: []core.Expense{}}
}

// Load replaces the live collection with what storage holds. A failing
// backend leaves an empty collection that is not persisted.
func (s *State) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reload(ctx)
}

// Stale reports whether the last load failed.
func (s *State) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stale
}

func (s *State) reload(ctx context.Context) {
	records, err := s.svc.Load(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load expenses, changes will not be saved until storage recovers",
			applog.FieldComponent, applog.ComponentApp,
			applog.FieldOperation, applog.OpLoad,
			applog.FieldError, err)
		if !s.stale {
			s.records = []core.Expense{}
		}
		s.stale = true
		return
	}
	s.records = records
	s.stale = false
}

// persist saves next unless the collection is stale. Caller holds s.mu.
func (s *State) persist(ctx context.Context, next []core.Expense) {
	if s.stale {
		slog.WarnContext(ctx, "Expenses not saved, stored collection was never loaded",
			applog.FieldComponent, applog.ComponentApp,
			applog.FieldOperation, applog.OpSave,
			applog.FieldRecords, len(next))
		return
	}
	s.svc.SaveAll(ctx, next)
}

// Records returns a copy of the live collection in insertion order.
func (s *State) Records() []core.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Expense, len(s.records))
	copy(out, s.records)
	return out
}

// Add creates a record from user input, appends it and persists the
// collection. Nothing changes when validation fails.
func (s *State) Add(ctx context.Context, amount, category, description string) (core.Expense, error) {
	e, err := s.svc.Create(amount, category, description)
	if err != nil {
		return core.Expense{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale {
		s.reload(ctx)
	}
	next := make([]core.Expense, 0, len(s.records)+1)
	next = append(next, s.records...)
	next = append(next, e)
	s.records = next
	s.persist(ctx, next)
	return e, nil
}

// Remove deletes the record with the given id and persists the reduced
// collection. It reports whether a record was removed.
func (s *State) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stale {
		s.reload(ctx)
	}
	next, ok := core.RemoveByID(s.records, id)
	if !ok {
		return false
	}
	s.records = next
	s.persist(ctx, next)
	return true
}

func (s *State) Total() core.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.svc.Total(s.records)
}

func (s *State) TopCategory() (core.CategoryAmount, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.svc.TopCategory(s.records)
}

func (s *State) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

func (s *State) SetView(v View) error {
	if _, err := ParseView(string(v)); err != nil {
		return err
	}
	s.mu.Lock()
	s.view = v
	s.mu.Unlock()
	return nil
}

// Screen summarizes the active view.
func (s *State) Screen() Screen {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc := Screen{View: s.view, Total: s.svc.Total(s.records)}
	switch s.view {
	case ViewTopCategory:
		sc.Top, sc.HasTop = s.svc.TopCategory(s.records)
	default:
		sc.Records = make([]core.Expense, len(s.records))
		copy(sc.Records, s.records)
	}
	return sc
}
