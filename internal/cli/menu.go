package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/service"
	"github.com/shopspring/decimal"
)

var menuItems = []string{
	"Add income",
	"Add expense",
	"View summary",
	"Expense breakdown chart",
	"Monthly advice",
	"Set budget limit",
	"Search transactions",
	"Save data",
	"Save & exit",
}

// Menu is the numbered interactive loop over a single ledger.
type Menu struct {
	ledger   *ledger.Ledger
	store    service.Storage
	reader   *NonBlockingReader
	out      io.Writer
	currency string
}

// NewMenu creates a menu that reads choices from in and writes to out.
func NewMenu(l *ledger.Ledger, store service.Storage, in io.Reader, out io.Writer, currency string) *Menu {
	return &Menu{
		ledger:   l,
		store:    store,
		reader:   NewNonBlockingReader(in),
		out:      out,
		currency: currency,
	}
}

// Run loops until the user saves and exits, input ends, or ctx is canceled.
// Ending without option 9 leaves unsaved changes unwritten.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printMenu()

		choice, err := m.prompt(ctx, "Choose an option")
		if err != nil {
			return m.endOfInput(err)
		}

		switch choice {
		case "1":
			err = m.addTransaction(ctx, model.KindIncome)
		case "2":
			err = m.addTransaction(ctx, model.KindExpense)
		case "3":
			err = RenderSummary(m.out, m.ledger.Summary(), m.currency)
		case "4":
			err = m.showBreakdown()
		case "5":
			err = RenderAdvice(m.out, m.ledger.MonthlyAdvice(), m.currency)
		case "6":
			err = m.setBudget(ctx)
		case "7":
			err = m.search(ctx)
		case "8":
			m.save(ctx, "Data saved.")
		case "9":
			if m.save(ctx, "Data saved. Goodbye!") {
				return nil
			}
		default:
			m.println(FormatError("Invalid choice. Try again."))
		}

		if err != nil {
			if isEndOfInput(err) {
				return m.endOfInput(err)
			}
			return err
		}
	}
}

func (m *Menu) printMenu() {
	var b strings.Builder
	b.WriteString("\n" + FormatTitle("Personal Finance Tracker") + "\n")
	for i, item := range menuItems {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	_, _ = io.WriteString(m.out, b.String())
}

func (m *Menu) prompt(ctx context.Context, label string) (string, error) {
	if _, err := io.WriteString(m.out, FormatPrompt(label)); err != nil {
		return "", err
	}
	return m.reader.ReadLine(ctx)
}

func (m *Menu) println(line string) {
	_, _ = fmt.Fprintln(m.out, line)
}

func isEndOfInput(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, ErrInputCancelled)
}

func (m *Menu) endOfInput(err error) error {
	if !isEndOfInput(err) {
		return err
	}
	if errors.Is(err, io.EOF) {
		m.println("\n" + FormatInfo("Input closed. Exiting without saving."))
	}
	return nil
}

// promptAmount reads an amount. ok is false when the input was not a valid
// amount; the user has already been told.
func (m *Menu) promptAmount(ctx context.Context, label string) (amount decimal.Decimal, ok bool, err error) {
	raw, err := m.prompt(ctx, label)
	if err != nil {
		return decimal.Zero, false, err
	}
	amount, parseErr := model.ParseAmount(raw)
	if parseErr != nil {
		m.println(FormatError(fmt.Sprintf("Invalid amount %q: enter a non-negative number.", raw)))
		return decimal.Zero, false, nil
	}
	return amount, true, nil
}

func (m *Menu) addTransaction(ctx context.Context, kind model.Kind) error {
	amount, ok, err := m.promptAmount(ctx, "Enter amount")
	if err != nil || !ok {
		return err
	}

	category, err := m.prompt(ctx, "Enter category")
	if err != nil {
		return err
	}

	alert, err := m.ledger.AddTransaction(amount, category, kind)
	if err != nil {
		m.println(FormatError(err.Error()))
		return nil
	}

	m.println(FormatSuccess(fmt.Sprintf("Recorded %s of %s in %s.",
		kind, FormatMoney(amount, m.currency), model.NormalizeCategory(category))))
	if alert != nil {
		m.println(FormatAlert(*alert, m.currency))
	}
	return nil
}

func (m *Menu) showBreakdown() error {
	breakdown, ok := m.ledger.ExpenseBreakdown()
	if !ok {
		m.println(FormatInfo(noExpenseMsg))
		return nil
	}
	m.println(RenderBreakdownChart(breakdown, m.currency))
	return nil
}

func (m *Menu) setBudget(ctx context.Context) error {
	category, err := m.prompt(ctx, "Enter category")
	if err != nil {
		return err
	}

	limit, ok, err := m.promptAmount(ctx, "Enter budget limit")
	if err != nil || !ok {
		return err
	}

	if err := m.ledger.SetBudgetLimit(category, limit); err != nil {
		m.println(FormatError(err.Error()))
		return nil
	}

	m.println(FormatSuccess(fmt.Sprintf("Budget for %s set to %s.",
		model.NormalizeCategory(category), FormatMoney(limit, m.currency))))
	return nil
}

func (m *Menu) search(ctx context.Context) error {
	keyword, err := m.prompt(ctx, "Search category")
	if err != nil {
		return err
	}

	results := m.ledger.Search(keyword)
	if len(results) == 0 {
		m.println(FormatInfo(fmt.Sprintf("No transactions match %q.", keyword)))
		return nil
	}
	return RenderTransactions(m.out, results, m.currency)
}

// save writes the ledger and reports the outcome. It returns false when the
// save failed so the caller can keep the session alive.
func (m *Menu) save(ctx context.Context, done string) bool {
	if err := ledger.Save(ctx, m.store, m.ledger); err != nil {
		m.println(FormatError("Failed to save: " + err.Error()))
		return false
	}
	m.println(FormatSuccess(done))
	return true
}
