package core

import (
	"errors"
	"regexp"
	"testing"
	"time"
)

func TestCreatorCreate(t *testing.T) {
	fixed := time.Date(2025, time.March, 9, 10, 0, 0, 0, time.UTC)
	c := Creator{
		Now:   func() time.Time { return fixed },
		NewID: func() string { return "id-1" },
	}

	e, err := c.Create("12,50", " Lazer ", "Cinema")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID != "id-1" || e.Amount.Cents != 1250 || e.Category != "Lazer" || e.Description != "Cinema" || e.Date != "09/03/2025" {
		t.Fatalf("unexpected record: %+v", e)
	}
}

func TestCreatorRejectsInvalidInput(t *testing.T) {
	c := Creator{}
	cases := []struct {
		amount, cat, desc string
		want              error
	}{
		{"0", "A", "d", ErrInvalidAmount},
		{"-3", "A", "d", ErrInvalidAmount},
		{"abc", "A", "d", ErrInvalidAmount},
		{"1.٣", "A", "d", ErrInvalidAmount},
		{"3", "", "d", ErrEmptyCategory},
		{"3", "A", "   ", ErrEmptyDescription},
	}
	for i, tc := range cases {
		e, err := c.Create(tc.amount, tc.cat, tc.desc)
		if !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
		if e != (Expense{}) {
			t.Fatalf("case %d returned a partial record: %+v", i, e)
		}
	}
}

func TestCreatorDefaults(t *testing.T) {
	var c Creator
	a, err := c.Create("1", "A", "first")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := c.Create("1", "A", "second")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct ids, got %q and %q", a.ID, b.ID)
	}
	if !regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`).MatchString(a.Date) {
		t.Fatalf("date not in dd/mm/yyyy: %q", a.Date)
	}
	if _, err := ParseDate(a.Date); err != nil {
		t.Fatalf("date not parseable: %v", err)
	}
}
