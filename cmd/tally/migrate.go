package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run SQLite schema migrations",
		Long: `Bring a SQLite ledger up to the current schema. Other commands migrate on
open as well; use --status to see where a database stands without changing it.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	status, _ := cmd.Flags().GetBool("status")
	out := cmd.OutOrStdout()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Backend != storage.BackendSQLite {
		return fmt.Errorf("migrations apply to the sqlite backend only (configured: %s)", cfg.Backend)
	}

	store, err := storage.NewSQLiteStorage(cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	if status {
		fmt.Fprintln(out, cli.FormatTitle("Database Migration Status"))
		fmt.Fprintf(out, "Database:        %s\n", cfg.Path)
		fmt.Fprintf(out, "Current version: %d\n", current)
		fmt.Fprintf(out, "Latest version:  %d\n", storage.ExpectedSchemaVersion)

		if current >= storage.ExpectedSchemaVersion {
			savedAt, err := store.LastSaved(ctx)
			if err != nil {
				return err
			}
			if savedAt.IsZero() {
				fmt.Fprintln(out, "Last saved:      never")
			} else {
				fmt.Fprintf(out, "Last saved:      %s\n", savedAt.Local().Format("2006-01-02 15:04"))
			}
		}
		return nil
	}

	slog.Debug("running database migrations", "path", cfg.Path, "from", current)
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Database is at schema version %d.", storage.ExpectedSchemaVersion)))
	return err
}
