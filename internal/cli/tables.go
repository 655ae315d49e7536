package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/tally/internal/model"
)

// RenderSummary prints every transaction followed by the current balance.
func RenderSummary(w io.Writer, summary model.Summary, currency string) error {
	var b strings.Builder
	b.WriteString(FormatTitle("Transaction Summary") + "\n")

	if len(summary.Transactions) == 0 {
		b.WriteString(SubtleStyle.Render("No transactions recorded yet.") + "\n")
	}
	for _, txn := range summary.Transactions {
		fmt.Fprintf(&b, "%s | %s | %s | %s\n",
			txn.DateString(),
			FormatKind(txn.Kind),
			txn.Category,
			FormatMoney(txn.Amount, currency))
	}

	fmt.Fprintf(&b, "\n%s %s\n",
		BoldStyle.Render("Current Balance:"),
		FormatMoney(summary.Balance, currency))

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderTransactions prints transactions as an aligned table.
func RenderTransactions(w io.Writer, transactions []model.Transaction, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("Date"),
		HeaderStyle.Render("Kind"),
		HeaderStyle.Render("Category"),
		HeaderStyle.Render("Amount"))
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 10),
		strings.Repeat("-", 7),
		strings.Repeat("-", 20),
		strings.Repeat("-", 12))

	for _, txn := range transactions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			txn.DateString(),
			txn.Kind,
			txn.Category,
			FormatMoney(txn.Amount, currency))
	}

	return tw.Flush()
}

// RenderBudgetLimits prints configured limits with spending to date.
func RenderBudgetLimits(w io.Writer, limits []model.BudgetLimit, spent model.Breakdown, currency string) error {
	if len(limits) == 0 {
		_, err := fmt.Fprintln(w, FormatInfo("No budget limits set."))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		HeaderStyle.Render("Category"),
		HeaderStyle.Render("Limit"),
		HeaderStyle.Render("Spent"),
		HeaderStyle.Render("Remaining"))

	for _, limit := range limits {
		used := spent[limit.Category]
		remaining := limit.Limit.Sub(used)
		remainingText := FormatMoney(remaining, currency)
		if remaining.IsNegative() {
			remainingText = ErrorStyle.Render(remainingText)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			limit.Category,
			FormatMoney(limit.Limit, currency),
			FormatMoney(used, currency),
			remainingText)
	}

	return tw.Flush()
}

// RenderAdvice prints this month's budget comparison.
func RenderAdvice(w io.Writer, advice []model.Advice, currency string) error {
	var b strings.Builder
	b.WriteString(FormatTitle("Monthly Advice") + "\n")

	if len(advice) == 0 {
		b.WriteString(FormatInfo("No budgeted spending this month.") + "\n")
	}

	for _, a := range advice {
		amounts := FormatMoney(a.Spent, currency) + " of " + FormatMoney(a.Limit, currency)
		switch a.Status {
		case model.AdviceOver:
			b.WriteString(FormatWarning(fmt.Sprintf("%s: over budget, spent %s. Consider cutting back.", a.Category, amounts)) + "\n")
		default:
			b.WriteString(FormatSuccess(fmt.Sprintf("%s: within budget, spent %s.", a.Category, amounts)) + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderMonthComparison prints one month next to another, category by category.
func RenderMonthComparison(w io.Writer, current, previous model.MonthOverview, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		HeaderStyle.Render(""),
		HeaderStyle.Render(current.Label()),
		HeaderStyle.Render(previous.Label()))

	row := func(label string, cur, prev string) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", label, cur, prev)
	}

	row("Income", FormatMoney(current.Income, currency), FormatMoney(previous.Income, currency))
	row("Expenses", FormatMoney(current.Expenses, currency), FormatMoney(previous.Expenses, currency))
	row("Net", FormatMoney(current.Net(), currency), FormatMoney(previous.Net(), currency))
	row("", "", "")

	categories := make(model.Breakdown, len(current.ByCategory)+len(previous.ByCategory))
	for category, amount := range previous.ByCategory {
		categories[category] = amount
	}
	for category, amount := range current.ByCategory {
		categories[category] = categories[category].Add(amount)
	}

	for _, entry := range categories.Sorted() {
		row(entry.Category,
			FormatMoney(current.ByCategory[entry.Category], currency),
			FormatMoney(previous.ByCategory[entry.Category], currency))
	}

	return tw.Flush()
}
