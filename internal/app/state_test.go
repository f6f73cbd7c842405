package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"gastos/internal/codec"
	"gastos/internal/core"
	"gastos/internal/prefs/memory"
	"gastos/internal/services"
	"gastos/internal/store"
)

func newState(t *testing.T) (*State, *store.RecordStore) {
	t.Helper()
	ids := []string{"a", "b", "c", "d"}
	n := 0
	creator := core.Creator{
		Now: func() time.Time { return time.Date(2024, 7, 2, 9, 0, 0, 0, time.UTC) },
		NewID: func() string {
			id := ids[n]
			n++
			return id
		},
	}
	rs := store.New(memory.New(), nil)
	return NewState(services.NewExpenseService(rs, creator, nil)), rs
}

func TestState_LoadSeedsOnFirstRun(t *testing.T) {
	s, _ := newState(t)
	s.Load(context.Background())

	if got := len(s.Records()); got != 3 {
		t.Fatalf("expected 3 seed records, got %d", got)
	}
	if total := s.Total(); total.Cents != 25550 {
		t.Fatalf("expected total 25550, got %d", total.Cents)
	}
}

func TestState_AddPersists(t *testing.T) {
	ctx := context.Background()
	s, rs := newState(t)
	s.Load(ctx)

	e, err := s.Add(ctx, "200", "Moradia", "Conta de luz")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.ID != "a" || e.Date != "02/07/2024" {
		t.Fatalf("unexpected record: %+v", e)
	}

	res, err := rs.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Records) != 4 || res.Records[3] != e {
		t.Fatalf("expected appended record persisted, got %+v", res.Records)
	}
}

func TestState_AddRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	s, rs := newState(t)
	s.Load(ctx)

	tests := []struct {
		name                          string
		amount, category, description string
		want                          error
	}{
		{"zero amount", "0", "Lazer", "x", core.ErrInvalidAmount},
		{"not a number", "abc", "Lazer", "x", core.ErrInvalidAmount},
		{"blank category", "10", "  ", "x", core.ErrEmptyCategory},
		{"blank description", "10", "Lazer", "", core.ErrEmptyDescription},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Add(ctx, tt.amount, tt.category, tt.description); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if got := len(s.Records()); got != 3 {
		t.Fatalf("rejected input must not change the collection, got %d records", got)
	}
	if res, _ := rs.Load(ctx); !res.Seeded {
		t.Fatalf("rejected input must not persist anything")
	}
}

func TestState_RemoveKeepsOrderAndPersists(t *testing.T) {
	ctx := context.Background()
	s, rs := newState(t)
	s.Load(ctx)

	if !s.Remove(ctx, "2") {
		t.Fatalf("expected record 2 to be removed")
	}
	if s.Remove(ctx, "missing") {
		t.Fatalf("unknown id must report false")
	}

	got := s.Records()
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "3" {
		t.Fatalf("unexpected records after remove: %+v", got)
	}
	res, err := rs.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Records) != 2 || res.Records[0].ID != "1" || res.Records[1].ID != "3" {
		t.Fatalf("reduced collection not persisted: %+v", res.Records)
	}
}

func TestState_Views(t *testing.T) {
	s, _ := newState(t)
	s.Load(context.Background())

	if s.View() != ViewList {
		t.Fatalf("expected list view by default")
	}
	sc := s.Screen()
	if sc.View != ViewList || len(sc.Records) != 3 || sc.HasTop {
		t.Fatalf("unexpected list screen: %+v", sc)
	}

	if err := s.SetView(ViewTopCategory); err != nil {
		t.Fatalf("set view: %v", err)
	}
	sc = s.Screen()
	if !sc.HasTop || sc.Top.Name != "Compras" || sc.Top.Amount.Cents != 15000 || sc.Records != nil {
		t.Fatalf("unexpected top category screen: %+v", sc)
	}

	if err := s.SetView(View("chart")); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("expected ErrUnknownView, got %v", err)
	}
	if s.View() != ViewTopCategory {
		t.Fatalf("a rejected view must not change the active one")
	}
}

func TestState_TopCategoryEmpty(t *testing.T) {
	ctx := context.Background()
	s, _ := newState(t)
	s.Load(ctx)
	for _, id := range []string{"1", "2", "3"} {
		s.Remove(ctx, id)
	}
	if _, ok := s.TopCategory(); ok {
		t.Fatalf("expected no top category for an empty collection")
	}
	if total := s.Total(); total.Cents != 0 {
		t.Fatalf("expected zero total, got %d", total.Cents)
	}
}

// flakyPrefs fails reads while down is set.
type flakyPrefs struct {
	*memory.Store
	down bool
}

func (f *flakyPrefs) GetString(ctx context.Context, ns, key string) (string, bool, error) {
	if f.down {
		return "", false, errors.New("unavailable")
	}
	return f.Store.GetString(ctx, ns, key)
}

func TestState_FailedLoadDoesNotOverwriteStorage(t *testing.T) {
	ctx := context.Background()
	p := &flakyPrefs{Store: memory.New()}
	stored := codec.Encode([]core.Expense{
		{ID: "x", Amount: core.Money{Cents: 100}, Category: "Lazer", Description: "cinema", Date: "01/01/2024"},
	})
	if err := p.PutString(ctx, store.Namespace, store.Key, stored); err != nil {
		t.Fatalf("put: %v", err)
	}
	ids := []string{"a", "b"}
	n := 0
	creator := core.Creator{
		Now: func() time.Time { return time.Date(2024, 7, 2, 9, 0, 0, 0, time.UTC) },
		NewID: func() string {
			id := ids[n]
			n++
			return id
		},
	}
	s := NewState(services.NewExpenseService(store.New(p, nil), creator, nil))

	p.down = true
	s.Load(ctx)
	if !s.Stale() || len(s.Records()) != 0 {
		t.Fatalf("expected empty stale state, got stale=%v records=%d", s.Stale(), len(s.Records()))
	}

	if _, err := s.Add(ctx, "5", "Lazer", "pipoca"); err != nil {
		t.Fatalf("add: %v", err)
	}
	blob, _, err := p.Store.GetString(ctx, store.Namespace, store.Key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if blob != stored {
		t.Fatalf("stored blob overwritten while stale: %s", blob)
	}

	p.down = false
	e, err := s.Add(ctx, "7", "Lazer", "teatro")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if s.Stale() {
		t.Fatal("expected state to recover after a successful reload")
	}
	got := s.Records()
	if len(got) != 2 || got[0].ID != "x" || got[1] != e {
		t.Fatalf("unexpected records after recovery: %+v", got)
	}
	res, err := store.New(p.Store, nil).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Records) != 2 || res.Records[0].ID != "x" || res.Records[1].ID != "b" {
		t.Fatalf("unexpected persisted records: %+v", res.Records)
	}
}
