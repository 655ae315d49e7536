package ledger

import (
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 15, 4, 5, 0, time.Local)
	}
}

func TestAddTransaction(t *testing.T) {
	l := New(WithClock(fixedClock(2024, time.March, 10)))

	alert, err := l.AddTransaction(dec("1000"), "salary", model.KindIncome)
	require.NoError(t, err)
	assert.Nil(t, alert)

	txns := l.Transactions()
	require.Len(t, txns, 1)
	assert.Equal(t, "Salary", txns[0].Category)
	assert.Equal(t, model.KindIncome, txns[0].Kind)
	assert.Equal(t, "2024-03-10", txns[0].DateString())
	assert.True(t, txns[0].Amount.Equal(dec("1000")))
}

func TestAddTransactionRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		kind   model.Kind
	}{
		{name: "negative amount", amount: dec("-5"), kind: model.KindExpense},
		{name: "unknown kind", amount: dec("5"), kind: model.Kind("transfer")},
		{name: "empty kind", amount: dec("5"), kind: model.Kind("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			_, err := l.AddTransaction(decimal.Zero, "seed", model.KindIncome)
			require.NoError(t, err)

			alert, err := l.AddTransaction(tt.amount, "food", tt.kind)
			require.ErrorIs(t, err, common.ErrInvalidArgument)
			assert.Nil(t, alert)
			assert.Equal(t, 1, l.Len(), "failed add must not change the ledger")
		})
	}
}

func TestBudgetAlertScenario(t *testing.T) {
	l := New()
	require.NoError(t, l.SetBudgetLimit("Food", dec("400")))

	alert, err := l.AddTransaction(dec("1000"), "Salary", model.KindIncome)
	require.NoError(t, err)
	assert.Nil(t, alert)

	alert, err = l.AddTransaction(dec("300"), "food", model.KindExpense)
	require.NoError(t, err)
	assert.Nil(t, alert)

	alert, err = l.AddTransaction(dec("150"), "food", model.KindExpense)
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, "Food", alert.Category)
	assert.True(t, alert.Total.Equal(dec("450")))
	assert.True(t, alert.Limit.Equal(dec("400")))
	assert.True(t, alert.Overage().Equal(dec("50")))

	assert.True(t, l.Balance().Equal(dec("550")))
}

func TestBudgetAlertBoundary(t *testing.T) {
	tests := []struct {
		name      string
		amounts   []string
		wantAlert bool
	}{
		{name: "exactly at limit", amounts: []string{"60", "40"}, wantAlert: false},
		{name: "one cent over", amounts: []string{"60", "40.01"}, wantAlert: true},
		{name: "single expense over", amounts: []string{"100.50"}, wantAlert: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			require.NoError(t, l.SetBudgetLimit("rent", dec("100")))

			var alert *model.BudgetAlert
			for _, amount := range tt.amounts {
				var err error
				alert, err = l.AddTransaction(dec(amount), "Rent", model.KindExpense)
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantAlert, alert != nil)
		})
	}
}

func TestNoAlertWithoutLimitOrForIncome(t *testing.T) {
	l := New()
	require.NoError(t, l.SetBudgetLimit("Gifts", dec("10")))

	alert, err := l.AddTransaction(dec("500"), "Travel", model.KindExpense)
	require.NoError(t, err)
	assert.Nil(t, alert, "category without a limit never alerts")

	alert, err = l.AddTransaction(dec("500"), "Gifts", model.KindIncome)
	require.NoError(t, err)
	assert.Nil(t, alert, "income never alerts")
}

func TestAlertUsesLimitSetAfterSpending(t *testing.T) {
	l := New()
	_, err := l.AddTransaction(dec("80"), "Fun", model.KindExpense)
	require.NoError(t, err)

	require.NoError(t, l.SetBudgetLimit("fun", dec("50")))

	alert, err := l.AddTransaction(dec("1"), "fun", model.KindExpense)
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.True(t, alert.Total.Equal(dec("81")))
}

func TestBalance(t *testing.T) {
	l := New()
	assert.True(t, l.Balance().IsZero())

	_, err := l.AddTransaction(dec("0.10"), "a", model.KindIncome)
	require.NoError(t, err)
	_, err = l.AddTransaction(dec("0.20"), "b", model.KindIncome)
	require.NoError(t, err)
	_, err = l.AddTransaction(dec("0.30"), "c", model.KindExpense)
	require.NoError(t, err)

	assert.True(t, l.Balance().IsZero(), "decimal sums must be exact, got %s", l.Balance())
}

func TestSummaryKeepsInsertionOrder(t *testing.T) {
	l := New()
	dates := []time.Time{
		time.Date(2024, time.May, 3, 0, 0, 0, 0, time.Local),
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, time.March, 9, 0, 0, 0, 0, time.Local),
	}
	for i, d := range dates {
		_, err := l.AddDatedTransaction(decimal.NewFromInt(int64(i+1)), "c", model.KindIncome, d)
		require.NoError(t, err)
	}

	summary := l.Summary()
	require.Len(t, summary.Transactions, 3)
	assert.Equal(t, "2024-05-03", summary.Transactions[0].DateString())
	assert.Equal(t, "2024-01-01", summary.Transactions[1].DateString())
	assert.Equal(t, "2024-03-09", summary.Transactions[2].DateString())
	assert.True(t, summary.Balance.Equal(dec("6")))
}

func TestTransactionsReturnsCopy(t *testing.T) {
	l := New()
	_, err := l.AddTransaction(dec("1"), "a", model.KindIncome)
	require.NoError(t, err)

	txns := l.Transactions()
	txns[0].Category = "Mutated"

	assert.Equal(t, "A", l.Transactions()[0].Category)
}

func TestExpenseBreakdown(t *testing.T) {
	t.Run("no expenses", func(t *testing.T) {
		l := New()
		_, err := l.AddTransaction(dec("10"), "Salary", model.KindIncome)
		require.NoError(t, err)

		breakdown, ok := l.ExpenseBreakdown()
		assert.False(t, ok)
		assert.Empty(t, breakdown)
	})

	t.Run("sums by category", func(t *testing.T) {
		l := New()
		entries := []struct {
			amount   string
			category string
			kind     model.Kind
		}{
			{"12.50", "food", model.KindExpense},
			{"7.50", "FOOD", model.KindExpense},
			{"30", "rent", model.KindExpense},
			{"999", "food", model.KindIncome},
		}
		for _, e := range entries {
			_, err := l.AddTransaction(dec(e.amount), e.category, e.kind)
			require.NoError(t, err)
		}

		breakdown, ok := l.ExpenseBreakdown()
		require.True(t, ok)
		require.Len(t, breakdown, 2)
		assert.True(t, breakdown["Food"].Equal(dec("20")))
		assert.True(t, breakdown["Rent"].Equal(dec("30")))

		// Expenses in the breakdown plus income must reproduce the balance.
		assert.True(t, dec("999").Sub(breakdown.Total()).Equal(l.Balance()))
	})
}

func TestMonthlyAdvice(t *testing.T) {
	l := New(WithClock(fixedClock(2024, time.June, 15)))
	require.NoError(t, l.SetBudgetLimit("Food", dec("100")))
	require.NoError(t, l.SetBudgetLimit("Rent", dec("500")))
	require.NoError(t, l.SetBudgetLimit("Unused", dec("5")))

	add := func(amount, category string, date time.Time) {
		t.Helper()
		_, err := l.AddDatedTransaction(dec(amount), category, model.KindExpense, date)
		require.NoError(t, err)
	}

	june := time.Date(2024, time.June, 2, 0, 0, 0, 0, time.Local)
	add("80", "food", june)
	add("30", "food", june)
	add("500", "rent", june)
	add("25", "games", june)
	// Same month number in a different year must not count.
	add("1000", "rent", time.Date(2023, time.June, 2, 0, 0, 0, 0, time.Local))
	add("1000", "food", time.Date(2024, time.May, 31, 0, 0, 0, 0, time.Local))

	advice := l.MonthlyAdvice()
	require.Len(t, advice, 2)

	assert.Equal(t, "Food", advice[0].Category)
	assert.Equal(t, model.AdviceOver, advice[0].Status)
	assert.True(t, advice[0].Spent.Equal(dec("110")))

	assert.Equal(t, "Rent", advice[1].Category)
	assert.Equal(t, model.AdviceWithin, advice[1].Status, "spending equal to the limit is within")
	assert.True(t, advice[1].Spent.Equal(dec("500")))
}

func TestMonthlyAdviceEmpty(t *testing.T) {
	l := New()
	assert.Empty(t, l.MonthlyAdvice())
}

func TestMonthOverview(t *testing.T) {
	l := New()
	in := func(m time.Month, d int) time.Time {
		return time.Date(2024, m, d, 0, 0, 0, 0, time.Local)
	}

	_, err := l.AddDatedTransaction(dec("2000"), "Salary", model.KindIncome, in(time.February, 1))
	require.NoError(t, err)
	_, err = l.AddDatedTransaction(dec("120"), "Food", model.KindExpense, in(time.February, 14))
	require.NoError(t, err)
	_, err = l.AddDatedTransaction(dec("80"), "Food", model.KindExpense, in(time.February, 29))
	require.NoError(t, err)
	_, err = l.AddDatedTransaction(dec("40"), "Food", model.KindExpense, in(time.March, 1))
	require.NoError(t, err)

	feb := l.MonthOverview(2024, time.February)
	assert.Equal(t, "2024-02", feb.Label())
	assert.True(t, feb.Income.Equal(dec("2000")))
	assert.True(t, feb.Expenses.Equal(dec("200")))
	assert.True(t, feb.Net().Equal(dec("1800")))
	assert.True(t, feb.ByCategory["Food"].Equal(dec("200")))

	jan := l.MonthOverview(2024, time.January)
	assert.True(t, jan.Income.IsZero())
	assert.True(t, jan.Expenses.IsZero())
	assert.Empty(t, jan.ByCategory)
}

func TestBudgetLimits(t *testing.T) {
	l := New()

	_, ok := l.BudgetLimit("Food")
	assert.False(t, ok)

	require.ErrorIs(t, l.SetBudgetLimit("Food", decimal.Zero), common.ErrInvalidArgument)
	require.ErrorIs(t, l.SetBudgetLimit("Food", dec("-1")), common.ErrInvalidArgument)
	_, ok = l.BudgetLimit("Food")
	assert.False(t, ok)

	require.NoError(t, l.SetBudgetLimit("  food ", dec("400")))
	limit, ok := l.BudgetLimit("FOOD")
	require.True(t, ok)
	assert.True(t, limit.Equal(dec("400")))

	require.NoError(t, l.SetBudgetLimit("Food", dec("250")))
	require.NoError(t, l.SetBudgetLimit("books", dec("20")))
	limits := l.BudgetLimits()
	require.Len(t, limits, 2)
	assert.Equal(t, "Books", limits[0].Category)
	assert.Equal(t, "Food", limits[1].Category)
	assert.True(t, limits[1].Limit.Equal(dec("250")))
}

func TestSearch(t *testing.T) {
	l := New()
	for _, category := range []string{"food", "Fast Food", "Rent", "seafood"} {
		_, err := l.AddTransaction(dec("1"), category, model.KindExpense)
		require.NoError(t, err)
	}

	tests := []struct {
		name    string
		keyword string
		want    []string
	}{
		{name: "lowercase keyword", keyword: "foo", want: []string{"Food", "Fast Food", "Seafood"}},
		{name: "uppercase keyword", keyword: "FOOD", want: []string{"Food", "Fast Food", "Seafood"}},
		{name: "empty keyword matches all", keyword: "", want: []string{"Food", "Fast Food", "Rent", "Seafood"}},
		{name: "no match", keyword: "travel", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, txn := range l.Search(tt.keyword) {
				got = append(got, txn.Category)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearch_FoodAndFootwear(t *testing.T) {
	l := New()
	_, err := l.AddTransaction(dec("20"), "Food", model.KindExpense)
	require.NoError(t, err)
	_, err = l.AddTransaction(dec("80"), "Footwear", model.KindExpense)
	require.NoError(t, err)

	var got []string
	for _, txn := range l.Search("foo") {
		got = append(got, txn.Category)
	}
	assert.Equal(t, []string{"Food", "Footwear"}, got)

	assert.Empty(t, l.Search("xyz"))
}

func TestRestore(t *testing.T) {
	date := time.Date(2024, time.April, 2, 0, 0, 0, 0, time.Local)
	txns := []model.Transaction{
		{Amount: dec("300"), Category: "food", Kind: model.KindExpense, Date: date},
		{Amount: dec("1000"), Category: "Salary", Kind: model.KindIncome, Date: date},
	}
	limits := []model.BudgetLimit{{Category: "food", Limit: dec("400")}}

	l, err := Restore(txns, limits)
	require.NoError(t, err)
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, "Food", l.Transactions()[0].Category)

	// Running totals are rebuilt, so the next expense sees the restored spending.
	alert, err := l.AddTransaction(dec("150"), "Food", model.KindExpense)
	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.True(t, alert.Total.Equal(dec("450")))

	t.Run("invalid record", func(t *testing.T) {
		_, err := Restore([]model.Transaction{{Amount: dec("1"), Category: "x", Kind: "bogus"}}, nil)
		require.ErrorIs(t, err, common.ErrInvalidArgument)
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, err := Restore(nil, []model.BudgetLimit{{Category: "x", Limit: decimal.Zero}})
		require.ErrorIs(t, err, common.ErrInvalidArgument)
	})
}
