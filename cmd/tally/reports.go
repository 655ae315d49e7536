package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "List every transaction and the current balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			return cli.RenderSummary(s.out, s.ledger.Summary(), s.cfg.Currency)
		},
	}
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Print the current balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			_, err = fmt.Fprintf(s.out, "Current Balance: %s\n", cli.FormatMoney(s.ledger.Balance(), s.cfg.Currency))
			return err
		},
	}
}

func breakdownCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "breakdown",
		Short: "Chart expenses by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			breakdown, _ := s.ledger.ExpenseBreakdown()
			_, err = fmt.Fprintln(s.out, cli.RenderBreakdownChart(breakdown, s.cfg.Currency))
			return err
		},
	}
}

func adviceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "advice",
		Short: "Compare this month's spending with your budget limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			return cli.RenderAdvice(s.out, s.ledger.MonthlyAdvice(), s.cfg.Currency)
		},
	}
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compare a month with the month before it",
		Long: `Show income, expenses, net and per-category spending for a month next to
the previous calendar month.

Examples:
  # This month
  tally report

  # January 2024 against December 2023
  tally report --month 2024-01`,
		Args: cobra.NoArgs,
		RunE: runReport,
	}

	cmd.Flags().String("month", "", "month to report, YYYY-MM (default: current month)")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	monthFlag, _ := cmd.Flags().GetString("month")

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	month := s.ledger.Now()
	if monthFlag != "" {
		if month, err = parseMonth(monthFlag); err != nil {
			return err
		}
	}

	current, previous := monthPair(month)
	currentOverview := s.ledger.MonthOverview(current.Year(), current.Month())
	previousOverview := s.ledger.MonthOverview(previous.Year(), previous.Month())

	fmt.Fprintln(s.out, cli.FormatTitle("Monthly Report"))
	return cli.RenderMonthComparison(s.out, currentOverview, previousOverview, s.cfg.Currency)
}

// parseMonth parses a YYYY-MM month.
func parseMonth(value string) (time.Time, error) {
	month, err := time.ParseInLocation("2006-01", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month %q must be YYYY-MM", common.ErrInvalidArgument, value)
	}
	return month, nil
}

// monthPair returns the first day of t's month and of the month before it.
func monthPair(t time.Time) (current, previous time.Time) {
	current = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return current, current.AddDate(0, -1, 0)
}
