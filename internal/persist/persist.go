// Package persist selects the key/value backend for the ledger based on
// configuration.
package persist

import (
	"fmt"
	"log/slog"

	"termly/internal/config"
	"termly/internal/ledger"
	applog "termly/internal/log"
	"termly/internal/persist/memory"
	"termly/internal/persist/sqlite"
)

// Open returns the configured KV backend and a close function. The
// memory backend is ephemeral and meant for tests and throwaway runs.
func Open(cfg *config.Config) (ledger.KV, func() error, error) {
	switch cfg.DataBackend {
	case config.BackendMemory:
		slog.Info("Using in-memory persistence, data will not survive restarts",
			applog.FieldComponent, applog.ComponentPersist,
			applog.FieldBackend, cfg.DataBackend)
		return memory.New(), func() error { return nil }, nil

	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		slog.Info("SQLite persistence ready",
			applog.FieldComponent, applog.ComponentPersist,
			applog.FieldBackend, cfg.DataBackend,
			"db_path", cfg.SQLiteDBPath)
		return store, store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}
