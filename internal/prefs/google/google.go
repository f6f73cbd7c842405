package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"gastos/internal/prefs"
)

// Store keeps preferences in a Google spreadsheet. Each namespace is a tab
// (which must already exist); column A holds keys and column B their values.
// A single cell holds at most 50,000 characters, which bounds the value size.
type Store struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ prefs.Store = (*Store)(nil)

// Config selects the spreadsheet and the service account used to reach it.
// Inline JSON wins over a credentials file.
type Config struct {
	SpreadsheetID      string
	ServiceAccountJSON string
	ServiceAccountFile string
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Store{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// newSheetsService initializes a Sheets service using service account credentials.
func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	var credentialsJSON []byte
	switch {
	case strings.TrimSpace(cfg.ServiceAccountJSON) != "":
		slog.InfoContext(ctx, "Using inline JSON credentials")
		credentialsJSON = []byte(cfg.ServiceAccountJSON)
	case strings.TrimSpace(cfg.ServiceAccountFile) != "":
		slog.InfoContext(ctx, "Reading credentials from file", "path", cfg.ServiceAccountFile)
		raw, err := os.ReadFile(cfg.ServiceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = raw
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (s *Store) GetString(ctx context.Context, namespace, key string) (string, bool, error) {
	rows, err := s.readRows(ctx, namespace)
	if err != nil {
		return "", false, err
	}
	_, value, ok := findKey(rows, key)
	return value, ok, nil
}

func (s *Store) PutString(ctx context.Context, namespace, key, value string) error {
	rows, err := s.readRows(ctx, namespace)
	if err != nil {
		return err
	}

	if row, _, ok := findKey(rows, key); ok {
		rng := fmt.Sprintf("%s!B%d", quoteSheet(namespace), row)
		vr := &gsheet.ValueRange{Values: [][]any{{value}}}
		_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, vr).
			ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("update %s: %w", rng, err)
		}
		return nil
	}

	rng := quoteSheet(namespace) + "!A:B"
	vr := &gsheet.ValueRange{Values: [][]any{{key, value}}}
	_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, rng, vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", rng, err)
	}
	return nil
}

func (s *Store) readRows(ctx context.Context, namespace string) ([][]any, error) {
	if s.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := quoteSheet(namespace) + "!A:B"
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}
