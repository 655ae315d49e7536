package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

const savedAtKey = "saved_at"

// LoadTransactions returns every stored transaction in insertion order.
func (s *SQLiteStorage) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	saved, err := s.hasSaved(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, fmt.Errorf("%w: %s", common.ErrNoSavedData, s.dbPath)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date, category, kind, amount
		FROM transactions
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query transactions: %w", common.ErrPersistenceUnavailable, err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating transactions: %w", common.ErrPersistenceUnavailable, err)
	}

	slog.Debug("Loaded transactions", "path", s.dbPath, "count", len(transactions))
	return transactions, nil
}

func scanTransaction(rows *sql.Rows) (model.Transaction, error) {
	var (
		date   string
		kind   string
		txn    model.Transaction
		amount decimal.Decimal
	)
	if err := rows.Scan(&date, &txn.Category, &kind, &amount); err != nil {
		return model.Transaction{}, fmt.Errorf("%w: failed to scan transaction: %w", common.ErrPersistenceUnavailable, err)
	}

	parsedDate, err := model.ParseDate(date)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: %w", common.ErrPersistenceUnavailable, err)
	}
	parsedKind, err := model.ParseKind(kind)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: %w", common.ErrPersistenceUnavailable, err)
	}

	txn.Date = parsedDate
	txn.Kind = parsedKind
	txn.Amount = amount
	return txn, nil
}

// SaveTransactions replaces the stored transactions with the given ones.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	// Validate inputs
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", common.ErrPersistenceUnavailable, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveTransactionsTx(ctx, tx, transactions); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transactions: %w", common.ErrPersistenceUnavailable, err)
	}

	slog.Debug("Saved transactions", "path", s.dbPath, "count", len(transactions))
	return nil
}

func (s *SQLiteStorage) saveTransactionsTx(ctx context.Context, tx *sql.Tx, transactions []model.Transaction) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("%w: failed to clear transactions: %w", common.ErrPersistenceUnavailable, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (position, date, category, kind, amount)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: failed to prepare statement: %w", common.ErrPersistenceUnavailable, err)
	}
	defer func() { _ = stmt.Close() }()

	for i, txn := range transactions {
		if _, err := stmt.ExecContext(ctx,
			i,
			txn.DateString(),
			txn.Category,
			txn.Kind.String(),
			txn.Amount.String(),
		); err != nil {
			return fmt.Errorf("%w: failed to insert transaction %d: %w", common.ErrPersistenceUnavailable, i, err)
		}
	}

	return s.markSavedTx(ctx, tx)
}

func (s *SQLiteStorage) markSavedTx(ctx context.Context, q queryable) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO ledger_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, savedAtKey, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("%w: failed to record save time: %w", common.ErrPersistenceUnavailable, err)
	}
	return nil
}

func (s *SQLiteStorage) hasSaved(ctx context.Context, q queryable) (bool, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM ledger_meta WHERE key = ?`, savedAtKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: failed to read ledger metadata: %w", common.ErrPersistenceUnavailable, err)
	}
	return true, nil
}

// LastSaved returns when the ledger was last saved, or the zero time if never.
func (s *SQLiteStorage) LastSaved(ctx context.Context) (time.Time, error) {
	if err := validateContext(ctx); err != nil {
		return time.Time{}, err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM ledger_meta WHERE key = ?`, savedAtKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: failed to read ledger metadata: %w", common.ErrPersistenceUnavailable, err)
	}

	savedAt, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid save timestamp %q: %w", value, err)
	}
	return savedAt, nil
}
