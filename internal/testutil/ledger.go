package testutil

import (
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// FixedNow is the default clock used by built ledgers.
var FixedNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.Local)

// Fixture is a named set of builder steps.
type Fixture func(*LedgerBuilder) *LedgerBuilder

// BudgetScenario records salary, sets a 400 Food limit, then spends 300 and
// 150 on Food. The last expense raises an alert and the balance ends at 550.
var BudgetScenario Fixture = func(b *LedgerBuilder) *LedgerBuilder {
	return b.
		Income("1000", "Salary").
		Budget("Food", "400").
		Expense("300", "Food").
		Expense("150", "Food")
}

// LedgerBuilder builds a ledger fluently. Any invalid step fails the test.
//
// Example:
//
//	l := testutil.NewLedgerBuilder(t).
//		Income("1000", "Salary").
//		ExpenseOn("2024-02-10", "45.50", "Fuel").
//		Build()
type LedgerBuilder struct {
	now    time.Time
	t      *testing.T
	steps  []func(*ledger.Ledger)
	alerts []model.BudgetAlert
}

// NewLedgerBuilder starts an empty ledger clocked at FixedNow.
func NewLedgerBuilder(t *testing.T) *LedgerBuilder {
	t.Helper()
	return &LedgerBuilder{t: t, now: FixedNow}
}

// At sets the ledger clock.
func (b *LedgerBuilder) At(now time.Time) *LedgerBuilder {
	b.now = now
	return b
}

// Income records income dated today.
func (b *LedgerBuilder) Income(amount, category string) *LedgerBuilder {
	return b.add(amount, category, model.KindIncome, "")
}

// Expense records an expense dated today.
func (b *LedgerBuilder) Expense(amount, category string) *LedgerBuilder {
	return b.add(amount, category, model.KindExpense, "")
}

// IncomeOn records income on a YYYY-MM-DD date.
func (b *LedgerBuilder) IncomeOn(date, amount, category string) *LedgerBuilder {
	return b.add(amount, category, model.KindIncome, date)
}

// ExpenseOn records an expense on a YYYY-MM-DD date.
func (b *LedgerBuilder) ExpenseOn(date, amount, category string) *LedgerBuilder {
	return b.add(amount, category, model.KindExpense, date)
}

// Budget sets a category limit.
func (b *LedgerBuilder) Budget(category, amount string) *LedgerBuilder {
	b.steps = append(b.steps, func(l *ledger.Ledger) {
		b.t.Helper()
		if err := l.SetBudgetLimit(category, b.amount(amount)); err != nil {
			b.t.Fatalf("failed to set budget for %q: %v", category, err)
		}
	})
	return b
}

// WithFixture applies a predefined fixture.
func (b *LedgerBuilder) WithFixture(fixture Fixture) *LedgerBuilder {
	return fixture(b)
}

// Build replays every step into a new ledger.
func (b *LedgerBuilder) Build() *ledger.Ledger {
	b.t.Helper()

	now := b.now
	l := ledger.New(ledger.WithClock(func() time.Time { return now }))
	b.alerts = nil
	for _, step := range b.steps {
		step(l)
	}
	return l
}

// Alerts returns the budget alerts raised by the last Build.
func (b *LedgerBuilder) Alerts() []model.BudgetAlert {
	return b.alerts
}

func (b *LedgerBuilder) add(amount, category string, kind model.Kind, date string) *LedgerBuilder {
	b.steps = append(b.steps, func(l *ledger.Ledger) {
		b.t.Helper()

		var when time.Time
		if date != "" {
			parsed, err := model.ParseDate(date)
			if err != nil {
				b.t.Fatalf("bad fixture date: %v", err)
			}
			when = parsed
		}

		alert, err := l.AddDatedTransaction(b.amount(amount), category, kind, when)
		if err != nil {
			b.t.Fatalf("failed to add %s %s %q: %v", kind, amount, category, err)
		}
		if alert != nil {
			b.alerts = append(b.alerts, *alert)
		}
	})
	return b
}

func (b *LedgerBuilder) amount(s string) decimal.Decimal {
	b.t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		b.t.Fatalf("bad fixture amount %q: %v", s, err)
	}
	return d
}
