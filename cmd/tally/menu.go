package main

import (
	"github.com/Veraticus/tally/internal/cli"
	"github.com/spf13/cobra"
)

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive menu",
		Long: `Open the numbered menu to add income and expenses, view the summary,
chart your spending, set budget limits and search. Nothing is written until you
choose "Save data" or "Save & exit".`,
		Args: cobra.NoArgs,
		RunE: runMenu,
	}
}

func runMenu(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx, cancel := handler.HandleInterrupts(cmd.Context(), true)
	defer cancel()

	menu := cli.NewMenu(s.ledger, s.store, cmd.InOrStdin(), s.out, s.cfg.Currency)
	return menu.Run(ctx)
}
