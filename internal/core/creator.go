package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Creator builds new expense records. Now and NewID decide what "today" and a
// fresh identifier mean; nil fields fall back to the wall clock and a random
// UUID.
type Creator struct {
	Now   func() time.Time
	NewID func() string
}

// Create validates the user input and returns a new record dated today.
// No record is returned when validation fails.
func (c Creator) Create(amount, category, description string) (Expense, error) {
	cents, err := ParseDecimalToCents(amount)
	if err != nil {
		return Expense{}, err
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	newID := uuid.NewString
	if c.NewID != nil {
		newID = c.NewID
	}

	e := Expense{
		Amount:      Money{Cents: cents},
		Category:    strings.TrimSpace(category),
		Description: strings.TrimSpace(description),
	}
	if err := e.Validate(); err != nil {
		return Expense{}, err
	}
	e.ID = newID()
	e.Date = FormatDate(now())
	return e, nil
}
