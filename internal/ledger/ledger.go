// Package ledger implements the transaction ledger and its budget checks.
package ledger

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// Ledger owns the ordered transaction history and the budget for one user.
// It is not safe for concurrent use.
type Ledger struct {
	now           func() time.Time
	budget        *model.Budget
	expenseTotals map[string]decimal.Decimal
	transactions  []model.Transaction
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the clock used for default dates and the current month.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// New creates an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		now:           time.Now,
		budget:        model.NewBudget(),
		expenseTotals: make(map[string]decimal.Decimal),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Restore rebuilds a ledger from persisted transactions and budget limits.
// Every record goes through the same validation as a new entry.
func Restore(transactions []model.Transaction, limits []model.BudgetLimit, opts ...Option) (*Ledger, error) {
	l := New(opts...)

	for i, txn := range transactions {
		restored, err := model.NewTransaction(txn.Amount, txn.Category, txn.Kind, txn.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction at index %d: %w", i, err)
		}
		l.append(restored)
	}

	for _, limit := range limits {
		if err := l.budget.Set(limit.Category, limit.Limit); err != nil {
			return nil, fmt.Errorf("budget limit for %q: %w", limit.Category, err)
		}
	}

	return l, nil
}

// AddTransaction records a transaction dated today. For expenses it returns
// a BudgetAlert when the category's cumulative spending now exceeds its limit.
func (l *Ledger) AddTransaction(amount decimal.Decimal, category string, kind model.Kind) (*model.BudgetAlert, error) {
	return l.AddDatedTransaction(amount, category, kind, time.Time{})
}

// AddDatedTransaction records a transaction on the given date. A zero date
// means today. A failed add leaves the ledger unchanged.
func (l *Ledger) AddDatedTransaction(amount decimal.Decimal, category string, kind model.Kind, date time.Time) (*model.BudgetAlert, error) {
	if date.IsZero() {
		date = l.now()
	}

	txn, err := model.NewTransaction(amount, category, kind, date)
	if err != nil {
		return nil, err
	}

	l.append(txn)
	slog.Debug("recorded transaction",
		"kind", txn.Kind,
		"category", txn.Category,
		"amount", txn.Amount.String(),
		"date", txn.DateString())

	return l.checkBudget(txn), nil
}

// append stores txn and keeps the per-category expense totals current, so
// the budget check does not have to re-sum the history.
func (l *Ledger) append(txn model.Transaction) {
	l.transactions = append(l.transactions, txn)
	if txn.IsExpense() {
		l.expenseTotals[txn.Category] = l.expenseTotals[txn.Category].Add(txn.Amount)
	}
}

func (l *Ledger) checkBudget(txn model.Transaction) *model.BudgetAlert {
	if !txn.IsExpense() {
		return nil
	}

	limit, ok := l.budget.Limit(txn.Category)
	if !ok {
		return nil
	}

	total := l.expenseTotals[txn.Category]
	if !total.GreaterThan(limit) {
		return nil
	}

	slog.Debug("budget exceeded",
		"category", txn.Category,
		"total", total.String(),
		"limit", limit.String())

	return &model.BudgetAlert{
		Category: txn.Category,
		Total:    total,
		Limit:    limit,
	}
}

// Balance returns total income minus total expenses.
func (l *Ledger) Balance() decimal.Decimal {
	balance := decimal.Zero
	for _, txn := range l.transactions {
		balance = balance.Add(txn.Signed())
	}
	return balance
}

// Summary returns every transaction in insertion order with the balance.
func (l *Ledger) Summary() model.Summary {
	return model.Summary{
		Transactions: l.Transactions(),
		Balance:      l.Balance(),
	}
}

// ExpenseBreakdown sums expenses per category. The boolean is false when
// there are no expenses at all.
func (l *Ledger) ExpenseBreakdown() (model.Breakdown, bool) {
	if len(l.expenseTotals) == 0 {
		return model.Breakdown{}, false
	}

	out := make(model.Breakdown, len(l.expenseTotals))
	for category, total := range l.expenseTotals {
		out[category] = total
	}
	return out, true
}

// MonthlyAdvice compares this month's spending with the budget for every
// category that has both expenses this month and a limit. Spending equal to
// the limit counts as within. Results are sorted by category.
func (l *Ledger) MonthlyAdvice() []model.Advice {
	now := l.now()
	spent := l.MonthOverview(now.Year(), now.Month()).ByCategory

	advice := make([]model.Advice, 0, len(spent))
	for category, amount := range spent {
		limit, ok := l.budget.Limit(category)
		if !ok {
			continue
		}

		status := model.AdviceWithin
		if amount.GreaterThan(limit) {
			status = model.AdviceOver
		}
		advice = append(advice, model.Advice{
			Category: category,
			Status:   status,
			Spent:    amount,
			Limit:    limit,
		})
	}

	sort.Slice(advice, func(i, j int) bool {
		return advice[i].Category < advice[j].Category
	})
	return advice
}

// MonthOverview totals income and expenses for one calendar month.
func (l *Ledger) MonthOverview(year int, month time.Month) model.MonthOverview {
	overview := model.MonthOverview{
		Year:       year,
		Month:      month,
		Income:     decimal.Zero,
		Expenses:   decimal.Zero,
		ByCategory: model.Breakdown{},
	}

	for _, txn := range l.transactions {
		if !txn.InMonth(year, month) {
			continue
		}
		if txn.IsExpense() {
			overview.Expenses = overview.Expenses.Add(txn.Amount)
			overview.ByCategory[txn.Category] = overview.ByCategory[txn.Category].Add(txn.Amount)
		} else {
			overview.Income = overview.Income.Add(txn.Amount)
		}
	}

	return overview
}

// SetBudgetLimit creates or overwrites the limit for a category.
func (l *Ledger) SetBudgetLimit(category string, limit decimal.Decimal) error {
	if err := l.budget.Set(category, limit); err != nil {
		return err
	}
	slog.Debug("set budget limit",
		"category", model.NormalizeCategory(category),
		"limit", limit.String())
	return nil
}

// BudgetLimit returns the limit for a category and whether one is set.
func (l *Ledger) BudgetLimit(category string) (decimal.Decimal, bool) {
	return l.budget.Limit(category)
}

// BudgetLimits returns all limits sorted by category.
func (l *Ledger) BudgetLimits() []model.BudgetLimit {
	return l.budget.Limits()
}

// Search returns transactions whose category contains keyword, ignoring
// case, in insertion order. An empty keyword matches everything.
func (l *Ledger) Search(keyword string) []model.Transaction {
	needle := model.FoldCategory(keyword)

	var matches []model.Transaction
	for _, txn := range l.transactions {
		if strings.Contains(model.FoldCategory(txn.Category), needle) {
			matches = append(matches, txn)
		}
	}
	return matches
}

// Transactions returns a copy of the history in insertion order.
func (l *Ledger) Transactions() []model.Transaction {
	out := make([]model.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Len returns the number of recorded transactions.
func (l *Ledger) Len() int {
	return len(l.transactions)
}

// Now returns the ledger clock's current time.
func (l *Ledger) Now() time.Time {
	return l.now()
}
