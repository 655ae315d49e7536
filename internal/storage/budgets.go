package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// LoadBudget returns all stored budget limits sorted by category.
func (s *SQLiteStorage) LoadBudget(ctx context.Context) ([]model.BudgetLimit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, amount
		FROM budget_limits
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query budget limits: %w", common.ErrPersistenceUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	var limits []model.BudgetLimit
	for rows.Next() {
		var (
			category string
			amount   decimal.Decimal
		)
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("%w: failed to scan budget limit: %w", common.ErrPersistenceUnavailable, err)
		}
		limits = append(limits, model.BudgetLimit{Category: category, Limit: amount})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating budget limits: %w", common.ErrPersistenceUnavailable, err)
	}

	return limits, nil
}

// SaveBudget replaces the stored budget limits.
func (s *SQLiteStorage) SaveBudget(ctx context.Context, limits []model.BudgetLimit) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudgetLimits(limits); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", common.ErrPersistenceUnavailable, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM budget_limits`); err != nil {
		return fmt.Errorf("%w: failed to clear budget limits: %w", common.ErrPersistenceUnavailable, err)
	}

	for _, limit := range limits {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO budget_limits (category, amount) VALUES (?, ?)`,
			limit.Category, limit.Limit.String(),
		); err != nil {
			return fmt.Errorf("%w: failed to save budget limit %s: %w", common.ErrPersistenceUnavailable, limit.Category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit budget limits: %w", common.ErrPersistenceUnavailable, err)
	}
	return nil
}
