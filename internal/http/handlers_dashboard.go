package http

import (
	"net/http"

	"termly/internal/core"
	"termly/internal/currency"
	"termly/internal/insights"
	"termly/internal/ledger"
	"termly/internal/report"
)

type dashboardResponse struct {
	Term             core.Term              `json:"term"`
	PeriodDisplay    string                 `json:"periodDisplay"`
	Summary          report.Summary         `json:"summary"`
	RemainingDisplay string                 `json:"remainingDisplay"`
	Breakdown        []report.CategoryTotal `json:"breakdown"`
	PaymentSplit     report.PaymentSplit    `json:"paymentSplit"`
	Insights         []string               `json:"insights"`
}

type comparisonResponse struct {
	ActiveTerm core.Term                  `json:"activeTerm"`
	PastTerm   core.Term                  `json:"pastTerm"`
	Comparison report.DailyRateComparison `json:"comparison"`
}

// handleDashboard renders the full computed view for the active term,
// or any term when ?termId= is given. Responses are memoized per store
// version, so a hit never serves stale figures.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var (
		term core.Term
		ok   bool
	)
	if termID := r.URL.Query().Get("termId"); termID != "" {
		term, ok = s.store.Term(termID)
		if !ok {
			writeError(w, http.StatusNotFound, "term not found")
			return
		}
	} else {
		term, ok = s.store.ActiveTerm()
		if !ok {
			writeError(w, http.StatusConflict, ledger.ErrNoActiveTerm.Error())
			return
		}
	}

	key := s.dashCacheKey(term.ID)
	if cached, hit := s.dashCache.Get(key); hit {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	expenses := s.store.ExpensesForTerm(term.ID)
	categories := s.store.Categories()
	summary := report.Summarize(term, expenses)

	resp := dashboardResponse{
		Term:             term,
		PeriodDisplay:    term.StartDate.Display() + " to " + term.EndDate.Display(),
		Summary:          summary,
		RemainingDisplay: currency.Format(summary.Remaining.Cents, term.Currency),
		Breakdown:        report.CategoryBreakdown(expenses, categories),
		PaymentSplit:     report.SplitByPayment(expenses),
		Insights:         insights.Generate(term, expenses, categories, s.clock.Today()),
	}
	s.dashCache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

// handleComparison relates the active term's daily spending rate to a
// past term named by ?termId=.
func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	active, ok := s.store.ActiveTerm()
	if !ok {
		writeError(w, http.StatusConflict, ledger.ErrNoActiveTerm.Error())
		return
	}
	pastID := r.URL.Query().Get("termId")
	if pastID == "" {
		writeError(w, http.StatusBadRequest, "termId query parameter is required")
		return
	}
	past, ok := s.store.Term(pastID)
	if !ok {
		writeError(w, http.StatusNotFound, "term not found")
		return
	}

	writeJSON(w, http.StatusOK, comparisonResponse{
		ActiveTerm: active,
		PastTerm:   past,
		Comparison: report.CompareDailyRate(
			active, s.store.ExpensesForTerm(active.ID),
			past, s.store.ExpensesForTerm(past.ID),
			s.clock.Today()),
	})
}
