package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	chartWidth   = 30
	chartFilled  = "█"
	chartEmpty   = "░"
	noExpenseMsg = "No expenses to show."
)

// RenderBreakdownChart draws one bar per category, largest first, sized by
// the category's share of total expenses.
func RenderBreakdownChart(breakdown model.Breakdown, currency string) string {
	total := breakdown.Total()
	if len(breakdown) == 0 || !total.IsPositive() {
		return FormatInfo(noExpenseMsg)
	}

	entries := breakdown.Sorted()

	labelWidth := 0
	for _, entry := range entries {
		labelWidth = max(labelWidth, lipgloss.Width(entry.Category))
	}

	lines := make([]string, 0, len(entries)+2)
	lines = append(lines, FormatTitle("Expense Breakdown"))

	hundred := decimal.NewFromInt(100)
	for _, entry := range entries {
		pct := entry.Amount.Div(total).Mul(hundred)
		filled := int(pct.Mul(decimal.NewFromInt(chartWidth)).Div(hundred).Round(0).IntPart())
		if filled == 0 && entry.Amount.IsPositive() {
			filled = 1
		}

		bar := BarStyle.Render(strings.Repeat(chartFilled, filled)) +
			SubtleStyle.Render(strings.Repeat(chartEmpty, chartWidth-filled))

		label := entry.Category + strings.Repeat(" ", labelWidth-lipgloss.Width(entry.Category))
		lines = append(lines, fmt.Sprintf("%s  %s  %5s%%  %s",
			label,
			bar,
			pct.StringFixed(1),
			FormatMoney(entry.Amount, currency)))
	}

	lines = append(lines, "", BoldStyle.Render("Total: "+FormatMoney(total, currency)))
	return strings.Join(lines, "\n")
}
