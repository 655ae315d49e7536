package model

import (
	"testing"

	"github.com/Veraticus/tally/internal/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudget_SetAndLimit(t *testing.T) {
	b := NewBudget()

	_, ok := b.Limit("Food")
	assert.False(t, ok, "unset limit must report absence")

	require.NoError(t, b.Set(" food ", decimal.NewFromInt(400)))
	limit, ok := b.Limit("FOOD")
	require.True(t, ok)
	assert.True(t, limit.Equal(decimal.NewFromInt(400)))

	require.NoError(t, b.Set("Food", decimal.NewFromInt(250)))
	limit, _ = b.Limit("food")
	assert.True(t, limit.Equal(decimal.NewFromInt(250)), "set overwrites")
	assert.Equal(t, 1, b.Len())
}

func TestBudget_SetRejectsNonPositive(t *testing.T) {
	b := NewBudget()

	assert.ErrorIs(t, b.Set("Food", decimal.Zero), common.ErrInvalidArgument)
	assert.ErrorIs(t, b.Set("Food", decimal.NewFromInt(-1)), common.ErrInvalidArgument)
	assert.Equal(t, 0, b.Len())
}

func TestBudget_LimitsSorted(t *testing.T) {
	b := NewBudget()
	require.NoError(t, b.Set("travel", decimal.NewFromInt(900)))
	require.NoError(t, b.Set("food", decimal.NewFromInt(400)))
	require.NoError(t, b.Set("rent", decimal.NewFromInt(1200)))

	limits := b.Limits()
	require.Len(t, limits, 3)
	assert.Equal(t, "Food", limits[0].Category)
	assert.Equal(t, "Rent", limits[1].Category)
	assert.Equal(t, "Travel", limits[2].Category)
}

func TestBudgetAlert_Overage(t *testing.T) {
	alert := BudgetAlert{
		Category: "Food",
		Total:    decimal.NewFromInt(450),
		Limit:    decimal.NewFromInt(400),
	}
	assert.True(t, alert.Overage().Equal(decimal.NewFromInt(50)))
}
