package sheets

import (
	"context"
	"time"

	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// Report is a snapshot of the ledger prepared for export.
type Report struct {
	GeneratedAt  time.Time
	Balance      decimal.Decimal
	Breakdown    model.Breakdown
	Transactions []model.Transaction
	Budget       []model.BudgetLimit
}

// ReportWriter writes a ledger report to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, report Report) error
}
