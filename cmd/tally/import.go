package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/ofx"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) statements exported from your bank.
Debits become expenses and credits become income. The category is the payee
name unless --category is given. Budget alerts raised by the import are shown.

Examples:
  # Import single file
  tally import ~/Downloads/chase_jan_2024.qfx

  # Import all QFX files in a directory
  tally import ~/Downloads/*.qfx

  # Preview without saving
  tally import --dry-run statement.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.Flags().String("category", "", "Record every imported transaction under this category")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	category, _ := cmd.Flags().GetString("category")

	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	entries, err := parseStatements(ctx, files)
	if err != nil {
		return err
	}

	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if len(entries) == 0 {
		_, err = fmt.Fprintln(s.out, cli.FormatWarning("No transactions found in any file."))
		return err
	}

	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(entries), "Importing")
	result, importErr := ofx.Import(s.ledger, entries, ofx.ImportOptions{
		Category:   category,
		OnProgress: func() { cli.Advance(bar) },
	})
	_ = bar.Finish()

	for i := range result.Alerts {
		s.printAlert(&result.Alerts[i])
	}
	if importErr != nil {
		return importErr
	}

	if dryRun {
		_, err = fmt.Fprintln(s.out, cli.FormatWarning(fmt.Sprintf("Dry run: %d transactions not saved.", result.Imported)))
		return err
	}

	if err := s.save(ctx); err != nil {
		return err
	}

	_, err = fmt.Fprintln(s.out, cli.FormatSuccess(fmt.Sprintf("Imported %d transactions from %d files.", result.Imported, len(files))))
	return err
}

// expandFiles resolves glob patterns to files. A pattern with no matches is
// kept if it names an existing file.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("no files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, errors.New("no files found to import")
	}
	return files, nil
}

// parseStatements parses every file, skipping lines already seen in an
// earlier file of the same import. A file that fails to parse is logged and
// skipped; failing on every file is an error.
func parseStatements(ctx context.Context, files []string) ([]ofx.Entry, error) {
	parser := ofx.NewParser()
	seen := make(map[string]bool)

	var (
		entries []ofx.Entry
		failed  int
	)
	for _, path := range files {
		fileEntries, err := parseStatement(ctx, parser, path)
		if err != nil {
			slog.Error("failed to parse OFX file", "file", path, "error", err)
			failed++
			continue
		}

		added := 0
		for _, entry := range fileEntries {
			key := entry.AccountID + "/" + entry.FitID
			if entry.FitID != "" && seen[key] {
				continue
			}
			seen[key] = true
			entries = append(entries, entry)
			added++
		}

		slog.Debug("parsed file",
			"file", filepath.Base(path),
			"found", len(fileEntries),
			"duplicates", len(fileEntries)-added)
	}

	if failed == len(files) {
		return nil, fmt.Errorf("could not parse any of the %d files", len(files))
	}
	return entries, nil
}

func parseStatement(ctx context.Context, parser *ofx.Parser, path string) ([]ofx.Entry, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the user's own arguments
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return parser.ParseFile(ctx, f)
}
