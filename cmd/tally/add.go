package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/model"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <amount> <category>",
		Short: "Record a transaction",
		Long: `Record one income or expense transaction and save the ledger.

Examples:
  # An expense today
  tally add 12.50 coffee

  # Income on a given day
  tally add --income --date 2024-03-01 1000 salary`,
		Args: cobra.ExactArgs(2),
		RunE: runAdd,
	}

	cmd.Flags().Bool("income", false, "record income")
	cmd.Flags().Bool("expense", false, "record an expense (default)")
	cmd.Flags().String("date", "", "transaction date, YYYY-MM-DD (default: today)")
	cmd.MarkFlagsMutuallyExclusive("income", "expense")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	income, _ := cmd.Flags().GetBool("income")
	dateFlag, _ := cmd.Flags().GetString("date")

	amount, err := model.ParseAmount(args[0])
	if err != nil {
		return err
	}

	kind := model.KindExpense
	if income {
		kind = model.KindIncome
	}

	var date time.Time
	if dateFlag != "" {
		if date, err = model.ParseDate(dateFlag); err != nil {
			return err
		}
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	alert, err := s.ledger.AddDatedTransaction(amount, args[1], kind, date)
	if err != nil {
		return err
	}

	if err := s.save(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintln(s.out, cli.FormatSuccess(fmt.Sprintf("Recorded %s of %s in %s.",
		kind, cli.FormatMoney(amount, s.cfg.Currency), model.NormalizeCategory(args[1]))))
	s.printAlert(alert)
	return nil
}
