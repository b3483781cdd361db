// Package http exposes the ledger over a JSON API: term lifecycle,
// expense and category CRUD, currency settings and the computed
// dashboard views.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"termly/internal/cache"
	"termly/internal/ledger"
	applog "termly/internal/log"
	"termly/internal/middleware/ratelimit"
	"termly/internal/middleware/security"
	"termly/internal/middleware/trace"
)

// Options tunes the server beyond its collaborators.
type Options struct {
	CacheSize         int
	CacheTTL          time.Duration
	RequestsPerMinute int
}

func defaultOptions() Options {
	return Options{
		CacheSize:         64,
		CacheTTL:          30 * time.Second,
		RequestsPerMinute: 120,
	}
}

// Server serves the ledger API. It embeds http.Server so callers use
// the standard ListenAndServe/Shutdown lifecycle.
type Server struct {
	http.Server

	store *ledger.Store
	clock ledger.Clock

	dashCache *cache.LRU[dashboardResponse]
	sweeper   *cache.Sweeper
	limiter   *ratelimit.Limiter
}

func NewServer(addr string, store *ledger.Store, clock ledger.Clock, opts Options) *Server {
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultOptions().CacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultOptions().CacheTTL
	}
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = defaultOptions().RequestsPerMinute
	}

	s := &Server{
		store:     store,
		clock:     clock,
		dashCache: cache.NewLRU[dashboardResponse](opts.CacheSize, opts.CacheTTL),
		sweeper:   cache.NewSweeper(),
		limiter:   ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RequestsPerMinute}),
	}
	s.sweeper.Register(s.dashCache)
	s.sweeper.Start(time.Minute)

	mux := http.NewServeMux()
	s.routes(mux)

	handler := trace.NewMiddleware().Middleware(
		security.Headers(security.DefaultHeadersConfig())(
			s.limiter.Middleware(trace.ClientIP)(mux)))

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/terms", s.handleListTerms)
	mux.HandleFunc("POST /api/terms", s.handleStartTerm)
	mux.HandleFunc("GET /api/terms/active", s.handleGetActiveTerm)
	mux.HandleFunc("PUT /api/terms/active", s.handleSetActiveTerm)
	mux.HandleFunc("POST /api/terms/end", s.handleEndTerm)
	mux.HandleFunc("POST /api/terms/reset", s.handleResetTerm)
	mux.HandleFunc("GET /api/terms/{id}", s.handleGetTerm)
	mux.HandleFunc("DELETE /api/terms/{id}", s.handleDeleteTerm)
	mux.HandleFunc("PUT /api/terms/{id}/budget", s.handleUpdateTermBudget)
	mux.HandleFunc("PUT /api/terms/{id}/currency", s.handleUpdateTermCurrency)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleAddExpense)
	mux.HandleFunc("PATCH /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleAddCategory)
	mux.HandleFunc("PUT /api/categories/{id}", s.handleUpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("GET /api/currencies", s.handleListCurrencies)
	mux.HandleFunc("GET /api/settings/currency", s.handleGetGlobalCurrency)
	mux.HandleFunc("PUT /api/settings/currency", s.handleSetGlobalCurrency)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/dashboard/comparison", s.handleComparison)
}

// Shutdown stops background loops before draining connections.
func (s *Server) Shutdown(ctx context.Context) error {
	s.sweeper.Stop()
	s.limiter.Shutdown()

	slog.InfoContext(ctx, "HTTP server shutting down",
		applog.FieldComponent, applog.ComponentHTTP,
		applog.FieldOperation, applog.OpShutdown)
	return s.Server.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) dashCacheKey(termID string) string {
	return fmt.Sprintf("dash:%s:%d", termID, s.store.Version())
}
