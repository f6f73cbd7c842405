package core

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the day/month/year form records carry their date in.
const DateLayout = "02/01/2006"

type (
	Money struct {
		Cents int64
	}

	// Expense is a single recorded expense. Records are immutable once created.
	Expense struct {
		ID          string
		Amount      Money
		Category    string
		Description string
		Date        string // dd/mm/yyyy
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidDate      = errors.New("invalid date")
)

// DefaultCategories is the closed set of categories offered when recording an
// expense. The model itself accepts any non-empty category.
var DefaultCategories = []string{
	"Alimentação",
	"Transporte",
	"Compras",
	"Lazer",
	"Saúde",
	"Moradia",
	"Outros",
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// FormatDate renders t in the dd/mm/yyyy form used by stored records.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a dd/mm/yyyy date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// SeedExpenses returns the records shown on first run, before anything has
// been persisted.
func SeedExpenses() []Expense {
	return []Expense{
		{ID: "1", Amount: Money{Cents: 2550}, Category: "Alimentação", Description: "Lanche", Date: "01/07/2024"},
		{ID: "2", Amount: Money{Cents: 8000}, Category: "Transporte", Description: "Uber", Date: "01/07/2024"},
		{ID: "3", Amount: Money{Cents: 15000}, Category: "Compras", Description: "Supermercado", Date: "30/06/2024"},
	}
}

// RemoveByID returns a copy of records without the first record whose ID
// matches. The order of the remaining records is preserved and the input is
// left untouched.
func RemoveByID(records []Expense, id string) ([]Expense, bool) {
	for i, e := range records {
		if e.ID != id {
			continue
		}
		out := make([]Expense, 0, len(records)-1)
		out = append(out, records[:i]...)
		out = append(out, records[i+1:]...)
		return out, true
	}
	return records, false
}
