package model

import (
	"fmt"
	"sort"

	"github.com/Veraticus/tally/internal/common"
	"github.com/shopspring/decimal"
)

// BudgetLimit is a spending cap for one category.
type BudgetLimit struct {
	Category string
	Limit    decimal.Decimal
}

// BudgetAlert is raised when cumulative spending in a category goes over its limit.
type BudgetAlert struct {
	Category string
	Total    decimal.Decimal
	Limit    decimal.Decimal
}

// Overage returns how far spending exceeds the limit.
func (a BudgetAlert) Overage() decimal.Decimal {
	return a.Total.Sub(a.Limit)
}

// Budget maps normalized category names to positive spending limits.
// A category without an entry has no limit, which is distinct from a zero limit.
type Budget struct {
	limits map[string]decimal.Decimal
}

// NewBudget creates an empty budget.
func NewBudget() *Budget {
	return &Budget{limits: make(map[string]decimal.Decimal)}
}

// Set creates or overwrites the limit for a category.
func (b *Budget) Set(category string, limit decimal.Decimal) error {
	if !limit.IsPositive() {
		return fmt.Errorf("%w: budget limit %s must be positive", common.ErrInvalidArgument, limit)
	}
	b.limits[NormalizeCategory(category)] = limit
	return nil
}

// Limit returns the limit for a category and whether one is configured.
func (b *Budget) Limit(category string) (decimal.Decimal, bool) {
	limit, ok := b.limits[NormalizeCategory(category)]
	return limit, ok
}

// Limits returns all configured limits sorted by category.
func (b *Budget) Limits() []BudgetLimit {
	out := make([]BudgetLimit, 0, len(b.limits))
	for category, limit := range b.limits {
		out = append(out, BudgetLimit{Category: category, Limit: limit})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})
	return out
}

// Len returns the number of configured limits.
func (b *Budget) Len() int {
	return len(b.limits)
}
