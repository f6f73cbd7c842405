package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"gastos/internal/app"
	"gastos/internal/core"
	applog "gastos/internal/log"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	records := s.state.Records()
	total := core.Total(records)
	writeJSON(w, http.StatusOK, listResponse{
		Expenses:   toExpenseResponses(records),
		Count:      len(records),
		Total:      total.String(),
		TotalCents: total.Cents,
	})
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx)

	in, err := parseExpenseInput(w, r)
	if err != nil {
		if errors.Is(err, errUnsupportedMedia) {
			writeError(w, http.StatusUnsupportedMediaType, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	e, err := s.state.Add(ctx, string(in.Amount), in.Category, in.Description)
	if err != nil {
		logger.WarnContext(ctx, "Expense rejected",
			applog.FieldOperation, applog.OpCreate,
			applog.FieldError, err)
		writeError(w, http.StatusUnprocessableEntity, validationMessage(err))
		return
	}

	logger.InfoContext(ctx, "Expense created", applog.NewFields().
		WithOperation(applog.OpCreate).
		WithExpense(e.ID, e.Amount.Cents, e.Category).
		ToSlice()...)
	writeJSON(w, http.StatusCreated, toExpenseResponse(e))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if !s.state.Remove(ctx, id) {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}

	applog.FromContext(ctx).InfoContext(ctx, "Expense deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldExpenseID, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTopCategory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toTopCategoryResponse(s.state.TopCategory()))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"categories": core.DefaultCategories})
}

func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toScreenResponse(s.state.Screen()))
}

func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var body struct {
		View string `json:"view"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	view, err := app.ParseView(body.View)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err := s.state.SetView(view); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toScreenResponse(s.state.Screen()))
}
