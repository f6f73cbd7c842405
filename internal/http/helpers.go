package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"gastos/internal/app"
	"gastos/internal/core"
)

const maxBodyBytes = 64 << 10

type expenseResponse struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type listResponse struct {
	Expenses   []expenseResponse `json:"expenses"`
	Count      int               `json:"count"`
	Total      string            `json:"total"`
	TotalCents int64             `json:"total_cents"`
}

type topCategoryResponse struct {
	Found       bool   `json:"found"`
	Category    string `json:"category,omitempty"`
	Amount      string `json:"amount,omitempty"`
	AmountCents int64  `json:"amount_cents,omitempty"`
}

type screenResponse struct {
	View        app.View             `json:"view"`
	Total       string               `json:"total"`
	TotalCents  int64                `json:"total_cents"`
	Expenses    []expenseResponse    `json:"expenses,omitempty"`
	TopCategory *topCategoryResponse `json:"top_category,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Amount:      e.Amount.String(),
		AmountCents: e.Amount.Cents,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date,
	}
}

func toExpenseResponses(records []core.Expense) []expenseResponse {
	out := make([]expenseResponse, len(records))
	for i, e := range records {
		out[i] = toExpenseResponse(e)
	}
	return out
}

func toTopCategoryResponse(top core.CategoryAmount, ok bool) topCategoryResponse {
	if !ok {
		return topCategoryResponse{}
	}
	return topCategoryResponse{
		Found:       true,
		Category:    top.Name,
		Amount:      top.Amount.String(),
		AmountCents: top.Amount.Cents,
	}
}

func toScreenResponse(sc app.Screen) screenResponse {
	resp := screenResponse{
		View:       sc.View,
		Total:      sc.Total.String(),
		TotalCents: sc.Total.Cents,
	}
	switch sc.View {
	case app.ViewTopCategory:
		top := toTopCategoryResponse(sc.Top, sc.HasTop)
		resp.TopCategory = &top
	default:
		resp.Expenses = toExpenseResponses(sc.Records)
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// expenseInput is the body of POST /expenses.
type expenseInput struct {
	Amount      flexString `json:"amount"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
}

// flexString accepts a JSON string or number, so clients can send the
// amount either way.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("amount must be a string or a number")
	}
	*f = flexString(n.String())
	return nil
}

var errUnsupportedMedia = errors.New("unsupported content type")

// parseExpenseInput reads a JSON or form-encoded body.
func parseExpenseInput(w http.ResponseWriter, r *http.Request) (expenseInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType := "application/x-www-form-urlencoded"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return expenseInput{}, errUnsupportedMedia
		}
		mediaType = mt
	}

	switch mediaType {
	case "application/json":
		var in expenseInput
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return expenseInput{}, fmt.Errorf("invalid JSON body: %w", err)
		}
		return in, nil
	case "application/x-www-form-urlencoded", "multipart/form-data":
		var err error
		if mediaType == "multipart/form-data" {
			err = r.ParseMultipartForm(maxBodyBytes)
		} else {
			err = r.ParseForm()
		}
		if err != nil {
			return expenseInput{}, fmt.Errorf("invalid form body: %w", err)
		}
		return expenseInput{
			Amount:      flexString(r.PostFormValue("amount")),
			Category:    r.PostFormValue("category"),
			Description: r.PostFormValue("description"),
		}, nil
	default:
		return expenseInput{}, errUnsupportedMedia
	}
}

// validationMessage turns a creation error into a message fit for the user.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "amount must be a positive number"
	case errors.Is(err, core.ErrEmptyCategory):
		return "category is required"
	case errors.Is(err, core.ErrEmptyDescription):
		return "description is required"
	default:
		return strings.TrimSpace(err.Error())
	}
}
