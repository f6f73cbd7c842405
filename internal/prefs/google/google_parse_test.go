package google

import (
	"context"
	"testing"
)

func TestFindKey(t *testing.T) {
	rows := [][]any{
		{"theme", "dark"},
		{},
		{"expenses", "1|25.50|Alimentação|Lanche|01/07/2024"},
		{"empty"},
		{"expenses", "newer"},
	}

	cases := []struct {
		key   string
		row   int
		value string
		ok    bool
	}{
		{"theme", 1, "dark", true},
		{"empty", 4, "", true},
		{"expenses", 5, "newer", true},
		{"missing", 0, "", false},
	}
	for _, tc := range cases {
		row, value, ok := findKey(rows, tc.key)
		if row != tc.row || value != tc.value || ok != tc.ok {
			t.Fatalf("%s: got row=%d value=%q ok=%v", tc.key, row, value, ok)
		}
	}
}

func TestQuoteSheet(t *testing.T) {
	if got := quoteSheet("expense_prefs"); got != "'expense_prefs'" {
		t.Fatalf("unexpected: %s", got)
	}
	if got := quoteSheet("Bob's"); got != "'Bob''s'" {
		t.Fatalf("unexpected: %s", got)
	}
}

func TestNewRequiresSpreadsheetAndCredentials(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected error without spreadsheet id")
	}
	if _, err := New(context.Background(), Config{SpreadsheetID: "abc"}); err == nil {
		t.Fatalf("expected error without credentials")
	}
}

func TestUninitializedServiceErrors(t *testing.T) {
	s := &Store{spreadsheetID: "abc"}
	if _, _, err := s.GetString(context.Background(), "ns", "k"); err == nil {
		t.Fatalf("expected error with nil service")
	}
}
