package main

import (
	"fmt"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/model"
	"github.com/spf13/cobra"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage category budget limits",
		Long: `Set, show and list per-category budget limits. Limits cap a category's
cumulative spending across every recorded expense: an expense that takes the
category's total past its limit raises an alert. Monthly advice compares only
the current month's spending against the same limit.`,
	}

	cmd.AddCommand(budgetSetCmd())
	cmd.AddCommand(budgetGetCmd())
	cmd.AddCommand(budgetListCmd())

	return cmd
}

func budgetSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set or replace a category's limit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := model.ParseAmount(args[1])
			if err != nil {
				return err
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.ledger.SetBudgetLimit(args[0], limit); err != nil {
				return err
			}
			if err := s.save(cmd.Context()); err != nil {
				return err
			}

			_, err = fmt.Fprintln(s.out, cli.FormatSuccess(fmt.Sprintf("Budget for %s set to %s.",
				model.NormalizeCategory(args[0]), cli.FormatMoney(limit, s.cfg.Currency))))
			return err
		},
	}
}

func budgetGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <category>",
		Short: "Show a category's limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			category := model.NormalizeCategory(args[0])
			limit, ok := s.ledger.BudgetLimit(category)
			if !ok {
				_, err = fmt.Fprintln(s.out, cli.FormatInfo(fmt.Sprintf("No budget limit set for %s.", category)))
				return err
			}

			_, err = fmt.Fprintf(s.out, "%s: %s\n", category, cli.FormatMoney(limit, s.cfg.Currency))
			return err
		},
	}
}

func budgetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every limit with spending to date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			spent, _ := s.ledger.ExpenseBreakdown()
			return cli.RenderBudgetLimits(s.out, s.ledger.BudgetLimits(), spent, s.cfg.Currency)
		},
	}
}
