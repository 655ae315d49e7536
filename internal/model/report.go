package model

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Summary is a read-only projection of the ledger for display.
type Summary struct {
	Transactions []Transaction
	Balance      decimal.Decimal
}

// CategoryAmount is an amount aggregated under one category.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// Breakdown maps categories to summed amounts. Entry order is not meaningful.
type Breakdown map[string]decimal.Decimal

// Total sums every category in the breakdown.
func (b Breakdown) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range b {
		total = total.Add(amount)
	}
	return total
}

// Sorted returns the entries by descending amount, ties broken by name.
func (b Breakdown) Sorted() []CategoryAmount {
	out := make([]CategoryAmount, 0, len(b))
	for category, amount := range b {
		out = append(out, CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// AdviceStatus reports how spending compares with a budget limit.
type AdviceStatus string

const (
	// AdviceWithin means spending is at or below the limit.
	AdviceWithin AdviceStatus = "within"
	// AdviceOver means spending is above the limit.
	AdviceOver AdviceStatus = "over"
)

// Advice compares one category's spending this month with its limit.
type Advice struct {
	Category string
	Status   AdviceStatus
	Spent    decimal.Decimal
	Limit    decimal.Decimal
}

// MonthOverview summarizes one calendar month.
type MonthOverview struct {
	ByCategory Breakdown
	Income     decimal.Decimal
	Expenses   decimal.Decimal
	Year       int
	Month      time.Month
}

// Net returns income minus expenses for the month.
func (m MonthOverview) Net() decimal.Decimal {
	return m.Income.Sub(m.Expenses)
}

// Label returns the month in YYYY-MM form.
func (m MonthOverview) Label() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
