// Package testutil provides fixtures for tests that need a ready store or a
// populated ledger.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/storage"
)

// TestStore is a store in a per-test temporary directory.
type TestStore struct {
	Storage service.Storage
	t       *testing.T
	Backend string
	Path    string
}

// SetupTestStore opens a fresh store for backend ("json" or "sqlite").
// SQLite stores are migrated. The store is closed when the test ends.
//
// Example:
//
//	store := testutil.SetupTestStore(t, storage.BackendSQLite)
//	store.Seed(testutil.NewLedgerBuilder(t).WithFixture(testutil.BudgetScenario).Build())
func SetupTestStore(t *testing.T, backend string) *TestStore {
	t.Helper()

	name := "data.json"
	if backend == storage.BackendSQLite {
		name = "tally.db"
	}
	path := filepath.Join(t.TempDir(), name)

	store, err := storage.Open(context.Background(), backend, path)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("failed to close test store: %v", err)
		}
	})

	return &TestStore{
		Storage: store,
		Backend: backend,
		Path:    path,
		t:       t,
	}
}

// Seed saves l to the store or fails the test.
func (s *TestStore) Seed(l *ledger.Ledger) {
	s.t.Helper()

	if err := ledger.Save(context.Background(), s.Storage, l); err != nil {
		s.t.Fatalf("failed to seed store: %v", err)
	}
}

// Reload loads the saved ledger or fails the test. found reports whether
// anything had been saved.
func (s *TestStore) Reload(opts ...ledger.Option) (l *ledger.Ledger, found bool) {
	s.t.Helper()

	l, found, err := ledger.Load(context.Background(), s.Storage, opts...)
	if err != nil {
		s.t.Fatalf("failed to reload ledger: %v", err)
	}
	return l, found
}
