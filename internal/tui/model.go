// Package tui provides an interactive transaction browser with live search.
package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// Searcher finds transactions whose category contains a keyword.
type Searcher interface {
	Search(keyword string) []model.Transaction
}

// Lines used by everything except the table body: title with margin, search
// box, table header with border, footer with margin, help.
const chromeHeight = 8

// Header plus one row.
const minTableHeight = 3

// Model holds the browser state.
type Model struct {
	searcher Searcher
	theme    themes.Theme
	balance  decimal.Decimal
	currency string
	keymap   KeyMap
	help     help.Model
	query    string
	matches  []model.Transaction
	input    textinput.Model
	table    table.Model
	width    int
	height   int
	quitting bool
}

// newModel creates a browser showing every transaction.
func newModel(searcher Searcher, cfg Config) Model {
	input := textinput.New()
	input.Prompt = cli.SearchIcon + " "
	input.Placeholder = "Search categories..."
	input.CharLimit = 50
	input.Focus()

	t := table.New(
		table.WithFocused(true),
		table.WithHeight(max(minTableHeight, cfg.Height-chromeHeight)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(cfg.Theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = cfg.Theme.Selected
	t.SetStyles(s)

	m := Model{
		searcher: searcher,
		theme:    cfg.Theme,
		currency: cfg.Currency,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		table:    t,
		width:    cfg.Width,
		height:   cfg.Height,
	}
	m.updateColumnWidths()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(minTableHeight, m.height-chromeHeight))
		m.help.Width = msg.Width
		m.updateColumnWidths()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Up):
			m.table.MoveUp(1)
			return m, nil
		case key.Matches(msg, m.keymap.Down):
			m.table.MoveDown(1)
			return m, nil
		case key.Matches(msg, m.keymap.PageUp):
			m.table.MoveUp(max(1, m.table.Height()))
			return m, nil
		case key.Matches(msg, m.keymap.PageDown):
			m.table.MoveDown(max(1, m.table.Height()))
			return m, nil
		case key.Matches(msg, m.keymap.Home):
			m.table.GotoTop()
			return m, nil
		case key.Matches(msg, m.keymap.End):
			m.table.GotoBottom()
			return m, nil
		case key.Matches(msg, m.keymap.Clear):
			m.input.SetValue("")
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.query {
		m.refresh()
	}
	return m, cmd
}

// refresh reruns the search for the current input and rebuilds the rows.
func (m *Model) refresh() {
	m.query = m.input.Value()
	m.matches = m.searcher.Search(m.query)

	m.balance = decimal.Zero
	rows := make([]table.Row, 0, len(m.matches))
	for _, txn := range m.matches {
		m.balance = m.balance.Add(txn.Signed())
		rows = append(rows, table.Row{
			txn.DateString(),
			strings.ToUpper(txn.Kind.String()),
			txn.Category,
			cli.FormatMoney(txn.Amount, m.currency),
		})
	}

	m.table.SetRows(rows)
	m.table.GotoTop()
}

// updateColumnWidths gives the category column whatever the fixed columns
// leave over.
func (m *Model) updateColumnWidths() {
	const (
		dateWidth   = 10
		kindWidth   = 8
		amountWidth = 14
		padding     = 8
	)
	categoryWidth := max(12, m.width-dateWidth-kindWidth-amountWidth-padding)

	m.table.SetColumns([]table.Column{
		{Title: "Date", Width: dateWidth},
		{Title: "Kind", Width: kindWidth},
		{Title: "Category", Width: categoryWidth},
		{Title: "Amount", Width: amountWidth},
	})
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if len(m.matches) == 0 {
		body = m.theme.Empty.Render(fmt.Sprintf("No transactions match %q.", m.query))
	} else {
		body = m.table.View()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render(cli.LedgerIcon+" Transactions"),
		m.input.View(),
		body,
		m.footer(),
		m.help.View(m.keymap),
	)
}

func (m Model) footer() string {
	noun := "transactions"
	if len(m.matches) == 1 {
		noun = "transaction"
	}

	balance := cli.FormatMoney(m.balance, m.currency)
	if m.balance.IsNegative() {
		balance = m.theme.Expense.Render(balance)
	} else {
		balance = m.theme.Income.Render(balance)
	}

	return m.theme.Footer.Render(fmt.Sprintf("%d %s · Balance %s", len(m.matches), noun, balance))
}

// Matches returns the transactions currently shown.
func (m Model) Matches() []model.Transaction {
	return m.matches
}

// Balance returns the balance of the transactions currently shown.
func (m Model) Balance() decimal.Decimal {
	return m.balance
}

// Selected returns the highlighted transaction, if any.
func (m Model) Selected() (model.Transaction, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.matches) {
		return model.Transaction{}, false
	}
	return m.matches[i], true
}
