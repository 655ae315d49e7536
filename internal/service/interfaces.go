// Package service defines the interfaces shared between the ledger and its adapters.
package service

import (
	"context"

	"github.com/Veraticus/tally/internal/model"
)

// Storage defines the contract for our persistence layer. Loads return
// common.ErrNoSavedData when nothing has been saved yet.
type Storage interface {
	// Transaction operations
	LoadTransactions(ctx context.Context) ([]model.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error

	// Budget operations
	LoadBudget(ctx context.Context) ([]model.BudgetLimit, error)
	SaveBudget(ctx context.Context, limits []model.BudgetLimit) error

	Close() error
}
