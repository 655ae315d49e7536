package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/service"
)

// Supported storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open returns a ready-to-use store for the named backend. SQLite stores are
// migrated before they are returned.
func Open(ctx context.Context, backend, path string) (service.Storage, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendJSON, "":
		return NewJSONStorage(path)
	case BackendSQLite:
		store, err := NewSQLiteStorage(path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
