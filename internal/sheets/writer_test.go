package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func testReport() Report {
	date := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	return Report{
		GeneratedAt: time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC),
		Balance:     decimal.RequireFromString("550"),
		Breakdown: model.Breakdown{
			"Food": decimal.RequireFromString("450"),
			"Fun":  decimal.RequireFromString("0"),
		},
		Transactions: []model.Transaction{
			{Amount: decimal.RequireFromString("1000"), Category: "Salary", Kind: model.KindIncome, Date: date},
			{Amount: decimal.RequireFromString("300"), Category: "Food", Kind: model.KindExpense, Date: date},
			{Amount: decimal.RequireFromString("150"), Category: "Food", Kind: model.KindExpense, Date: date},
		},
		Budget: []model.BudgetLimit{
			{Category: "Food", Limit: decimal.RequireFromString("400")},
			{Category: "Rent", Limit: decimal.RequireFromString("1200")},
		},
	}
}

func findRow(values [][]any, first string) int {
	for i, row := range values {
		if len(row) > 0 && row[0] == first {
			return i
		}
	}
	return -1
}

func TestPrepareReportData(t *testing.T) {
	values := prepareReportData(testReport())

	require.NotEmpty(t, values)
	assert.Equal(t, []any{"Ledger Report", "Generated Mar 31, 2024"}, values[0])
	assert.Equal(t, []any{"Balance", 550.0}, values[3])
	assert.Equal(t, []any{"Total Transactions", 3}, values[4])

	breakdown := findRow(values, "Expense Breakdown")
	require.GreaterOrEqual(t, breakdown, 0)
	assert.Equal(t, []any{"Category", "Amount", "Share"}, values[breakdown+1])
	assert.Equal(t, []any{"Food", 450.0, "100.0%"}, values[breakdown+2])
	assert.Equal(t, []any{"Fun", 0.0, "0.0%"}, values[breakdown+3])

	budget := findRow(values, "Budget Limits")
	require.GreaterOrEqual(t, budget, 0)
	assert.Equal(t, []any{"Food", 400.0, 450.0}, values[budget+2])
	assert.Equal(t, []any{"Rent", 1200.0, 0.0}, values[budget+3])

	details := findRow(values, "Transaction Details")
	require.GreaterOrEqual(t, details, 0)
	assert.Equal(t, []any{"Date", "Kind", "Category", "Amount"}, values[details+1])

	rows := values[details+2:]
	require.Len(t, rows, 3)
	assert.Equal(t, []any{"2024-03-05", "income", "Salary", 1000.0}, rows[0])
	assert.Equal(t, []any{"2024-03-05", "expense", "Food", -300.0}, rows[1])
	assert.Equal(t, []any{"2024-03-05", "expense", "Food", -150.0}, rows[2])
}

func TestPrepareReportDataWithoutBudget(t *testing.T) {
	report := testReport()
	report.Budget = nil

	values := prepareReportData(report)
	assert.Equal(t, -1, findRow(values, "Budget Limits"))
}

func TestPrepareReportDataEmpty(t *testing.T) {
	values := prepareReportData(Report{})

	details := findRow(values, "Transaction Details")
	require.GreaterOrEqual(t, details, 0)
	assert.Len(t, values, details+2, "no rows after the details header")
}

func TestShare(t *testing.T) {
	tests := []struct {
		part  string
		total string
		want  string
	}{
		{part: "1", total: "3", want: "33.3%"},
		{part: "2", total: "3", want: "66.7%"},
		{part: "5", total: "0", want: "0.0%"},
	}
	for _, tt := range tests {
		t.Run(tt.part+"/"+tt.total, func(t *testing.T) {
			assert.Equal(t, tt.want, share(decimal.RequireFromString(tt.part), decimal.RequireFromString(tt.total)))
		})
	}
}

func TestMockWriter(t *testing.T) {
	mock := NewMockWriter()
	var _ ReportWriter = mock

	_, ok := mock.LastReport()
	assert.False(t, ok)

	require.NoError(t, mock.Write(context.Background(), testReport()))
	last, ok := mock.LastReport()
	require.True(t, ok)
	assert.Len(t, last.Transactions, 3)

	mock.SetWriteError(errors.New("quota exceeded"))
	require.EqualError(t, mock.Write(context.Background(), Report{}), "quota exceeded")
	assert.Equal(t, 2, mock.WriteCallCount)
}

func TestClassifyAPIError(t *testing.T) {
	plain := errors.New("connection reset")

	tests := []struct {
		name      string
		err       error
		rateLimit bool
		fatal     bool
	}{
		{name: "rate limited", err: &googleapi.Error{Code: http.StatusTooManyRequests}, rateLimit: true},
		{name: "forbidden", err: &googleapi.Error{Code: http.StatusForbidden}, fatal: true},
		{name: "server error", err: &googleapi.Error{Code: http.StatusBadGateway}},
		{name: "wrapped api error", err: fmt.Errorf("batch: %w", &googleapi.Error{Code: http.StatusNotFound}), fatal: true},
		{name: "non api error", err: plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyAPIError(tt.err)
			require.Error(t, got)
			assert.ErrorIs(t, got, tt.err)
			assert.Equal(t, tt.rateLimit, errors.Is(got, common.ErrRateLimit))

			var retryable *common.RetryableError
			isFatal := errors.As(got, &retryable) && !retryable.Retryable
			assert.Equal(t, tt.fatal, isFatal)
		})
	}

	assert.NoError(t, classifyAPIError(nil))
}
