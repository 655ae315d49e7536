// Package storage provides the data persistence layer for the ledger.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidBudgetLimit = errors.New("invalid budget limit")
	ErrUnknownBackend     = errors.New("unknown storage backend")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions. An empty slice is
// valid: saving an empty ledger clears the store.
func validateTransactions(transactions []model.Transaction) error {
	for i, txn := range transactions {
		if err := validateTransaction(&txn); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if !txn.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidTransaction, txn.Kind)
	}
	if txn.Amount.IsNegative() {
		return fmt.Errorf("%w: negative amount %s", ErrInvalidTransaction, txn.Amount)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	return nil
}

// validateBudgetLimits validates budget limits before they are written.
func validateBudgetLimits(limits []model.BudgetLimit) error {
	for _, limit := range limits {
		if strings.TrimSpace(limit.Category) == "" {
			return fmt.Errorf("%w: missing category", ErrInvalidBudgetLimit)
		}
		if !limit.Limit.IsPositive() {
			return fmt.Errorf("%w: %s limit %s is not positive", ErrInvalidBudgetLimit, limit.Category, limit.Limit)
		}
	}
	return nil
}
