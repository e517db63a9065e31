package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/spice-tracker/internal/cli"
	"github.com/Veraticus/spice-tracker/internal/config"
	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import records from OFX/QFX files",
		Long: `Import records from OFX or QFX (Quicken) statements exported from your bank.

Debits become expenses and credits become income. Lines that appear in more
than one file are imported once. Zero amounts and future-dated lines are
skipped. Either every line is imported or none is.

Examples:
  # Import single file
  spice import-ofx ~/Downloads/chase_jan_2024.qfx

  # Import all QFX files in a directory
  spice import-ofx ~/Downloads/*.qfx

  # Preview without saving
  spice import-ofx --dry-run ~/Downloads/Chase/*.qfx ~/Downloads/Ally/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().Bool("dry-run", false, "Preview import without saving")
	cmd.Flags().Int("workers", 0, "Files parsed at the same time (default from import.workers)")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	workers, _ := cmd.Flags().GetInt("workers")
	if workers <= 0 {
		workers = viper.GetInt(config.KeyImportWorkers)
	}

	out := cmd.OutOrStdout()

	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	slog.Info("🌶️  Importing OFX files...",
		"file_count", len(files),
		"workers", workers,
		"dry_run", dryRun)

	interrupts := cli.NewInterruptHandler(out)
	ctx := interrupts.HandleInterrupts(cmd.Context(), "Nothing was imported.")

	entries, err := parseStatements(ctx, files, workers, out)
	if err != nil {
		if interrupts.WasInterrupted() {
			return nil
		}
		return err
	}

	l, closeStore, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	fields, skipped := ofx.Prepare(entries, l.Now())

	fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf( //nolint:forbidigo // User-facing output
		"Found %d lines in %d accounts, %d to import, %d skipped",
		len(entries), len(ofx.Accounts(entries)), len(fields), skipped)))

	if len(fields) == 0 {
		fmt.Fprintln(out, cli.FormatWarning("Nothing to import")) //nolint:forbidigo // User-facing output
		return nil
	}

	if dryRun {
		preview := make([]model.Record, len(fields))
		for i, f := range fields {
			preview[i] = f.Normalize().Record(0)
		}
		if err := cli.WriteRecords(out, preview); err != nil {
			return err
		}
		fmt.Fprintln(out, cli.FormatInfo("Dry run, nothing saved")) //nolint:forbidigo // User-facing output
		return nil
	}

	ids, err := l.Import(ctx, fields)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d records", len(ids)))) //nolint:forbidigo // User-facing output
	return nil
}

// expandFiles resolves glob patterns. A pattern that matches nothing is
// used as a literal path if it exists.
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
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to import")
	}
	return files, nil
}

func parseStatements(ctx context.Context, files []string, workers int, out io.Writer) ([]ofx.Entry, error) {
	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(out),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(50*time.Millisecond),
		progressbar.OptionSetDescription("[cyan][bold]Reading statements...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(out); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)

	// The bar is not safe for concurrent use.
	var mu sync.Mutex
	done := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		slog.Debug("Parsed statement", "file", filepath.Base(path))
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	return ofx.NewParser().ParseFiles(ctx, files, workers, done)
}
