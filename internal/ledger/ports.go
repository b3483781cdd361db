package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"termly/internal/core"
)

// Storage keys, one per persisted collection.
const (
	KeyGlobalCurrency = "globalCurrency"
	KeyTerms          = "terms"
	KeyActiveTermID   = "activeTermId"
	KeyExpenses       = "expenses"
	KeyCategories     = "categories"
)

// Ports for outbound collaborators.
type (
	// KV is the durable key/value persistence port. Values are JSON
	// documents keyed per collection; Get reports whether the key was
	// present and leaves out untouched otherwise. State must be readable
	// immediately after a successful Set.
	KV interface {
		Get(ctx context.Context, key string, out any) (bool, error)
		Set(ctx context.Context, key string, value any) error
	}

	// Clock supplies the current calendar date, injected so tests can
	// pin "today".
	Clock interface {
		Today() core.Date
	}

	// IDFunc returns a fresh collision-resistant identifier.
	IDFunc func() string
)

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Today() core.Date {
	y, m, d := time.Now().Date()
	return core.NewDate(y, int(m), d)
}

// NewUUID is the production IDFunc.
func NewUUID() string {
	return uuid.NewString()
}
