package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

const jsonIndent = "    "

// transactionRecord is the on-disk form of a transaction.
type transactionRecord struct {
	Amount    json.Number `json:"amount"`
	Category  string      `json:"category"`
	TransType string      `json:"trans_type"`
	Date      string      `json:"date,omitempty"`
}

// JSONStorage keeps the ledger in a pretty-printed JSON file. Budget limits
// live in a sidecar file next to it. Every save overwrites both files.
type JSONStorage struct {
	path       string
	budgetPath string
}

// NewJSONStorage creates a JSON file store rooted at path.
func NewJSONStorage(path string) (*JSONStorage, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}

	return &JSONStorage{
		path:       path,
		budgetPath: budgetPathFor(path),
	}, nil
}

// budgetPathFor derives "<name>.budget.json" from the ledger file path.
func budgetPathFor(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".budget.json"
}

// Path returns the transaction file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// LoadTransactions reads all transactions in file order.
func (s *JSONStorage) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	data, err := readFile(s.path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []model.Transaction{}, nil
	}

	var records []transactionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", common.ErrPersistenceUnavailable, s.path, err)
	}

	transactions := make([]model.Transaction, 0, len(records))
	for i, record := range records {
		txn, err := record.toTransaction()
		if err != nil {
			return nil, fmt.Errorf("%w: record %d in %s: %w", common.ErrPersistenceUnavailable, i, s.path, err)
		}
		transactions = append(transactions, txn)
	}

	slog.Debug("Loaded transactions", "path", s.path, "count", len(transactions))
	return transactions, nil
}

func (r transactionRecord) toTransaction() (model.Transaction, error) {
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: amount %q", ErrInvalidTransaction, r.Amount)
	}

	kind, err := model.ParseKind(r.TransType)
	if err != nil {
		return model.Transaction{}, err
	}

	txn := model.Transaction{
		Amount:   amount,
		Category: r.Category,
		Kind:     kind,
	}
	// Records written before dates were tracked have none; the ledger
	// assigns today's date when it restores them.
	if r.Date != "" {
		date, err := model.ParseDate(r.Date)
		if err != nil {
			return model.Transaction{}, err
		}
		txn.Date = date
	}
	return txn, nil
}

// SaveTransactions overwrites the file with the given transactions.
func (s *JSONStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	records := make([]transactionRecord, 0, len(transactions))
	for _, txn := range transactions {
		records = append(records, transactionRecord{
			Amount:    json.Number(txn.Amount.String()),
			Category:  txn.Category,
			TransType: txn.Kind.String(),
			Date:      txn.DateString(),
		})
	}

	if err := writeJSON(s.path, records); err != nil {
		return err
	}

	slog.Debug("Saved transactions", "path", s.path, "count", len(records))
	return nil
}

// LoadBudget reads the budget sidecar file.
func (s *JSONStorage) LoadBudget(ctx context.Context) ([]model.BudgetLimit, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	data, err := readFile(s.budgetPath)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", common.ErrPersistenceUnavailable, s.budgetPath, err)
	}

	limits := make([]model.BudgetLimit, 0, len(raw))
	for category, value := range raw {
		limit, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s limit %q in %s", common.ErrPersistenceUnavailable, category, value, s.budgetPath)
		}
		limits = append(limits, model.BudgetLimit{Category: category, Limit: limit})
	}
	return limits, nil
}

// SaveBudget overwrites the budget sidecar file.
func (s *JSONStorage) SaveBudget(ctx context.Context, limits []model.BudgetLimit) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudgetLimits(limits); err != nil {
		return err
	}

	raw := make(map[string]string, len(limits))
	for _, limit := range limits {
		raw[limit.Category] = limit.Limit.String()
	}
	return writeJSON(s.budgetPath, raw)
}

// Close is a no-op; files are not held open between calls.
func (s *JSONStorage) Close() error {
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from user configuration
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", common.ErrNoSavedData, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", common.ErrPersistenceUnavailable, path, err)
	}
	return data, nil
}

// writeJSON replaces path with the indented encoding of v. It writes to a
// temporary file in the same directory and renames it into place.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("%w: failed to encode %s: %w", common.ErrPersistenceUnavailable, path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("%w: failed to create directory %s: %w", common.ErrPersistenceUnavailable, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file for %s: %w", common.ErrPersistenceUnavailable, path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: failed to write %s: %w", common.ErrPersistenceUnavailable, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", common.ErrPersistenceUnavailable, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: failed to replace %s: %w", common.ErrPersistenceUnavailable, path, err)
	}
	return nil
}
