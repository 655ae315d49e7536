package ofx

import (
	"fmt"
	"time"

	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// Recorder accepts dated transactions. *ledger.Ledger satisfies it.
type Recorder interface {
	AddDatedTransaction(amount decimal.Decimal, category string, kind model.Kind, date time.Time) (*model.BudgetAlert, error)
}

// ImportOptions controls how entries are recorded.
type ImportOptions struct {
	// OnProgress is called after each entry is recorded.
	OnProgress func()
	// Category replaces every entry's category when set.
	Category string
}

// ImportResult summarizes an import.
type ImportResult struct {
	Alerts   []model.BudgetAlert
	Imported int
}

// Import records entries in order and collects any budget alerts they raise.
// It stops at the first entry the recorder rejects.
func Import(r Recorder, entries []Entry, opts ImportOptions) (ImportResult, error) {
	var result ImportResult

	for i, entry := range entries {
		category := entry.Category
		if opts.Category != "" {
			category = opts.Category
		}

		alert, err := r.AddDatedTransaction(entry.Amount, category, entry.Kind, entry.Date)
		if err != nil {
			return result, fmt.Errorf("failed to import entry %d (%s): %w", i, entry.FitID, err)
		}

		result.Imported++
		if alert != nil {
			result.Alerts = append(result.Alerts, *alert)
		}
		if opts.OnProgress != nil {
			opts.OnProgress()
		}
	}

	return result, nil
}
