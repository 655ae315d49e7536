package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/service"
)

// Load restores a ledger from storage. When nothing has been saved yet it
// returns an empty ledger with found set to false instead of an error.
func Load(ctx context.Context, store service.Storage, opts ...Option) (l *Ledger, found bool, err error) {
	transactions, err := store.LoadTransactions(ctx)
	switch {
	case errors.Is(err, common.ErrNoSavedData):
		slog.Debug("no saved data found, starting with an empty ledger")
		transactions = nil
	case err != nil:
		return nil, false, fmt.Errorf("failed to load transactions: %w", err)
	default:
		found = true
	}

	limits, err := store.LoadBudget(ctx)
	if err != nil && !errors.Is(err, common.ErrNoSavedData) {
		return nil, false, fmt.Errorf("failed to load budget: %w", err)
	}

	l, err = Restore(transactions, limits, opts...)
	if err != nil {
		return nil, false, fmt.Errorf("failed to restore ledger: %w", err)
	}

	slog.Debug("loaded ledger",
		"transactions", l.Len(),
		"budget_limits", len(limits))
	return l, found, nil
}

// Save overwrites the stored transactions and budget with the ledger's state.
func Save(ctx context.Context, store service.Storage, l *Ledger) error {
	if err := store.SaveTransactions(ctx, l.transactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	if err := store.SaveBudget(ctx, l.BudgetLimits()); err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}

	slog.Info("saved ledger", "transactions", l.Len())
	return nil
}
