package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/sheets"
	"github.com/spf13/cobra"
)

// newReportWriter builds the Sheets writer. Tests replace it.
var newReportWriter = func(ctx context.Context, cfg sheets.Config) (sheets.ReportWriter, error) {
	return sheets.NewWriter(ctx, cfg, slog.Default())
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger to Google Sheets",
		Long: `Write a "Ledger Report" sheet with the balance, the expense breakdown, budget
limits and every transaction.

Authentication uses either a service account (sheets.service_account_path) or
OAuth2 credentials (sheets.client_id, sheets.client_secret,
sheets.refresh_token). GOOGLE_SHEETS_* environment variables work too.`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().String("spreadsheet-id", "", "update this spreadsheet instead of creating one")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	spreadsheetID, _ := cmd.Flags().GetString("spreadsheet-id")

	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		return fmt.Errorf("google sheets is not configured: %w", err)
	}
	if spreadsheetID != "" {
		sheetsConfig.SpreadsheetID = spreadsheetID
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	writer, err := newReportWriter(ctx, *sheetsConfig)
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	breakdown, _ := s.ledger.ExpenseBreakdown()
	report := sheets.Report{
		GeneratedAt:  time.Now(),
		Balance:      s.ledger.Balance(),
		Breakdown:    breakdown,
		Transactions: s.ledger.Transactions(),
		Budget:       s.ledger.BudgetLimits(),
	}

	if err := writer.Write(ctx, report); err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}

	_, err = fmt.Fprintln(s.out, cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to Google Sheets.", len(report.Transactions))))
	return err
}
