package http

import (
	"net/http"

	"termly/internal/core"
	"termly/internal/ledger"
)

type addExpenseRequest struct {
	// Amount is a decimal string, e.g. "12.34" or "12,34".
	Amount     string           `json:"amount"`
	CategoryID string           `json:"categoryId"`
	Type       core.PaymentType `json:"type"`
	Date       core.Date        `json:"date"`
	Note       string           `json:"note"`
}

type updateExpenseRequest struct {
	Amount     *string           `json:"amount"`
	CategoryID *string           `json:"categoryId"`
	Type       *core.PaymentType `json:"type"`
	Date       *core.Date        `json:"date"`
	Note       *string           `json:"note"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	if termID := r.URL.Query().Get("termId"); termID != "" {
		writeJSON(w, http.StatusOK, s.store.ExpensesForTerm(termID))
		return
	}
	if _, ok := s.store.ActiveTerm(); !ok {
		writeError(w, http.StatusConflict, ledger.ErrNoActiveTerm.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.store.ActiveTermExpenses())
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	// The store accepts any valid date; the API is the user boundary, so
	// it enforces the active term's window here.
	term, ok := s.store.ActiveTerm()
	if !ok {
		writeError(w, http.StatusConflict, ledger.ErrNoActiveTerm.Error())
		return
	}
	if err := req.Date.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}
	if !term.Contains(req.Date) {
		writeError(w, http.StatusUnprocessableEntity, "date outside the active term")
		return
	}

	expense, err := s.store.AddExpense(r.Context(), ledger.ExpenseInput{
		Amount:     core.Money{Cents: cents},
		CategoryID: req.CategoryID,
		Type:       req.Type,
		Date:       req.Date,
		Note:       sanitizeInput(req.Note),
	})
	if err != nil {
		handleStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, expense)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req updateExpenseRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := ledger.ExpensePatch{
		CategoryID: req.CategoryID,
		Type:       req.Type,
		Date:       req.Date,
	}
	if req.Amount != nil {
		cents, err := core.ParseDecimalToCents(*req.Amount)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid amount")
			return
		}
		patch.Amount = &core.Money{Cents: cents}
	}
	if req.Note != nil {
		note := sanitizeInput(*req.Note)
		patch.Note = &note
	}

	if err := s.store.UpdateExpense(r.Context(), r.PathValue("id"), patch); err != nil {
		handleStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteExpense(r.Context(), r.PathValue("id")); err != nil {
		handleStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
