package cli

import (
	"strings"

	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with the currency symbol, thousands
// separators and two decimals, e.g. "-$1,234.50".
func FormatMoney(amount decimal.Decimal, currency string) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}

	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + currency + b.String() + "." + frac
}

// FormatKind renders a transaction kind in upper case, colored by direction.
func FormatKind(kind model.Kind) string {
	label := strings.ToUpper(kind.String())
	if kind == model.KindExpense {
		return ExpenseStyle.Render(label)
	}
	return IncomeStyle.Render(label)
}

// FormatAlert describes a budget overrun.
func FormatAlert(alert model.BudgetAlert, currency string) string {
	return FormatWarning("Budget exceeded for " + alert.Category + ": spent " +
		FormatMoney(alert.Total, currency) + " of " + FormatMoney(alert.Limit, currency) +
		" (" + FormatMoney(alert.Overage(), currency) + " over)")
}
