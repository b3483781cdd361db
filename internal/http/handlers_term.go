package http

import (
	"net/http"

	"termly/internal/core"
)

type startTermRequest struct {
	StartDate core.Date `json:"startDate"`
	// Budget is a decimal string, e.g. "2000" or "2000.50".
	Budget string `json:"budget"`
}

type setActiveTermRequest struct {
	TermID string `json:"termId"`
}

type updateBudgetRequest struct {
	Budget string `json:"budget"`
}

type updateCurrencyRequest struct {
	Currency string `json:"currency"`
}

func (s *Server) handleListTerms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Terms())
}

func (s *Server) handleGetTerm(w http.ResponseWriter, r *http.Request) {
	term, ok := s.store.Term(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "term not found")
		return
	}
	writeJSON(w, http.StatusOK, term)
}

func (s *Server) handleGetActiveTerm(w http.ResponseWriter, r *http.Request) {
	term, ok := s.store.ActiveTerm()
	if !ok {
		writeError(w, http.StatusNotFound, "no active term")
		return
	}
	writeJSON(w, http.StatusOK, term)
}

func (s *Server) handleStartTerm(w http.ResponseWriter, r *http.Request) {
	var req startTermRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cents, err := core.ParseDecimalToCents(req.Budget)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid budget amount")
		return
	}

	term, err := s.store.StartNewTerm(r.Context(), req.StartDate, core.Money{Cents: cents})
	if err != nil {
		handleStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, term)
}

func (s *Server) handleSetActiveTerm(w http.ResponseWriter, r *http.Request) {
	var req setActiveTermRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, ok := s.store.Term(req.TermID); !ok {
		writeError(w, http.StatusNotFound, "term not found")
		return
	}
	if err := s.store.SetActiveTerm(r.Context(), req.TermID); err != nil {
		handleStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"activeTermId": req.TermID})
}

func (s *Server) handleEndTerm(w http.ResponseWriter, r *http.Request) {
	if err := s.store.EndCurrentTerm(r.Context()); err != nil {
		handleStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ended"})
}

func (s *Server) handleResetTerm(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ResetCurrentTerm(r.Context()); err != nil {
		handleStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleDeleteTerm(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteTerm(r.Context(), r.PathValue("id")); err != nil {
		handleStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateTermBudget(w http.ResponseWriter, r *http.Request) {
	var req updateBudgetRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	cents, err := core.ParseDecimalToCents(req.Budget)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid budget amount")
		return
	}
	if err := s.store.UpdateTermBudget(r.Context(), r.PathValue("id"), core.Money{Cents: cents}); err != nil {
		handleStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateTermCurrency(w http.ResponseWriter, r *http.Request) {
	var req updateCurrencyRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.store.UpdateTermCurrency(r.Context(), r.PathValue("id"), req.Currency); err != nil {
		handleStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
