package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakdown_SortedAndTotal(t *testing.T) {
	b := Breakdown{
		"Rent":   decimal.NewFromInt(1200),
		"Food":   decimal.NewFromInt(300),
		"Coffee": decimal.NewFromInt(300),
		"Travel": decimal.RequireFromString("99.99"),
	}

	sorted := b.Sorted()
	require.Len(t, sorted, 4)
	assert.Equal(t, "Rent", sorted[0].Category)
	assert.Equal(t, "Coffee", sorted[1].Category, "ties sort by name")
	assert.Equal(t, "Food", sorted[2].Category)
	assert.Equal(t, "Travel", sorted[3].Category)

	assert.True(t, b.Total().Equal(decimal.RequireFromString("1899.99")))
}

func TestMonthOverview(t *testing.T) {
	m := MonthOverview{
		Year:     2024,
		Month:    time.March,
		Income:   decimal.NewFromInt(1000),
		Expenses: decimal.NewFromInt(450),
	}

	assert.True(t, m.Net().Equal(decimal.NewFromInt(550)))
	assert.Equal(t, "2024-03", m.Label())
}
