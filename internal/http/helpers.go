package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"termly/internal/core"
	"termly/internal/ledger"
	applog "termly/internal/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response",
			applog.FieldComponent, applog.ComponentHTTP,
			applog.FieldError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// readJSON decodes the request body into dst, rejecting unknown fields
// so client typos surface as errors instead of silent no-ops.
func readJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// statusForError maps domain errors onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNoActiveTerm):
		return http.StatusConflict
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidPayment),
		errors.Is(err, core.ErrInvalidCurrency),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrDateRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func handleStoreError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		slog.Error("Store operation failed",
			applog.FieldComponent, applog.ComponentHTTP,
			applog.FieldError, err.Error())
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

// sanitizeInput trims whitespace and strips control characters from
// free-text fields.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
