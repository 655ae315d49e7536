package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/spf13/cobra"
)

// session is one command's view of the ledger and where it is stored.
type session struct {
	cfg    *config.Config
	store  service.Storage
	ledger *ledger.Ledger
	out    io.Writer
}

// openSession loads the configuration, opens storage and loads the ledger.
// Budget limits from the configuration override stored ones. When nothing
// has been saved yet a notice goes to stderr and the ledger starts empty.
func openSession(cmd *cobra.Command) (*session, error) {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	l, found, err := ledger.Load(ctx, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if !found {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatInfo("No saved data found."))
	}

	if err := applyConfiguredBudgets(l, cfg); err != nil {
		_ = store.Close()
		return nil, err
	}

	return &session{
		cfg:    cfg,
		store:  store,
		ledger: l,
		out:    cmd.OutOrStdout(),
	}, nil
}

// initStorage opens the configured backend.
func initStorage(ctx context.Context, cfg *config.Config) (service.Storage, error) {
	slog.Debug("opening storage", "backend", cfg.Backend, "path", cfg.Path)

	store, err := storage.Open(ctx, cfg.Backend, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage at %s: %w", cfg.Backend, cfg.Path, err)
	}
	return store, nil
}

func applyConfiguredBudgets(l *ledger.Ledger, cfg *config.Config) error {
	for _, category := range cfg.BudgetCategories() {
		if err := l.SetBudgetLimit(category, cfg.Budgets[category]); err != nil {
			return fmt.Errorf("failed to apply configured budget for %q: %w", category, err)
		}
	}
	return nil
}

func (s *session) save(ctx context.Context) error {
	if err := ledger.Save(ctx, s.store, s.ledger); err != nil {
		return fmt.Errorf("failed to save ledger: %w", err)
	}
	return nil
}

func (s *session) close() {
	if err := s.store.Close(); err != nil {
		slog.Warn("failed to close storage", "error", err)
	}
}

func (s *session) printAlert(alert *model.BudgetAlert) {
	if alert != nil {
		fmt.Fprintln(s.out, cli.FormatAlert(*alert, s.cfg.Currency))
	}
}
