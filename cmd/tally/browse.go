package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/tally/internal/tui"
	"github.com/Veraticus/tally/internal/tui/themes"
	"github.com/spf13/cobra"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse and search transactions interactively",
		Long: `Open a full-screen table of every transaction. Type to filter by category;
the footer shows how many transactions match and their balance.`,
		Args: cobra.NoArgs,
		RunE: runBrowse,
	}

	cmd.Flags().String("theme", "default", "color theme ("+strings.Join(themes.Names(), ", ")+")")

	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	themeName, _ := cmd.Flags().GetString("theme")
	theme, ok := themes.ByName(themeName)
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", themeName, strings.Join(themes.Names(), ", "))
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	return tui.Run(cmd.Context(), s.ledger,
		tui.WithTheme(theme),
		tui.WithCurrency(s.cfg.Currency),
	)
}
