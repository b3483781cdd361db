package http

import (
	"net/http"

	"termly/internal/currency"
)

type categoryRequest struct {
	Name string `json:"name"`
}

type globalCurrencyRequest struct {
	Currency string `json:"currency"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Categories())
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	category, err := s.store.AddCategory(r.Context(), sanitizeInput(req.Name))
	if err != nil {
		handleStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.store.UpdateCategory(r.Context(), r.PathValue("id"), sanitizeInput(req.Name)); err != nil {
		handleStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		handleStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCurrencies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, currency.Supported)
}

func (s *Server) handleGetGlobalCurrency(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"currency": s.store.GlobalCurrency()})
}

func (s *Server) handleSetGlobalCurrency(w http.ResponseWriter, r *http.Request) {
	var req globalCurrencyRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, ok := currency.Lookup(req.Currency); !ok {
		writeError(w, http.StatusUnprocessableEntity, "unsupported currency")
		return
	}
	if err := s.store.SetGlobalCurrency(r.Context(), req.Currency); err != nil {
		handleStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"currency": req.Currency})
}
