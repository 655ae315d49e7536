package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [keyword]",
		Short: "Find transactions by category",
		Long: `List transactions whose category contains the keyword, ignoring case.
With no keyword every transaction is listed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := strings.Join(args, "")

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			results := s.ledger.Search(keyword)
			if len(results) == 0 {
				_, err = fmt.Fprintln(s.out, cli.FormatInfo(fmt.Sprintf("No transactions match %q.", keyword)))
				return err
			}
			return cli.RenderTransactions(s.out, results, s.cfg.Currency)
		},
	}
}
