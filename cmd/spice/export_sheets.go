package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/spice-tracker/internal/cli"
	"github.com/Veraticus/spice-tracker/internal/config"
	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/query"
	"github.com/Veraticus/spice-tracker/internal/sheets"
)

func exportSheetsCmd() *cobra.Command {
	var flags criteriaFlags

	cmd := &cobra.Command{
		Use:   "export-sheets",
		Short: "Export records and totals to Google Sheets",
		Long: `Write the matching records, their totals and per-category breakdowns to
a Google Sheets spreadsheet. The sheet is overwritten on every export.

Authenticate first with 'spice auth sheets' or configure a service account
(sheets.service_account_path).

Examples:
  spice export-sheets
  spice export-sheets --from 2024-01-01 --to 2024-12-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			criteria, err := flags.criteria()
			if err != nil {
				return err
			}

			sheetsConfig, err := config.LoadSheetsConfig(viper.GetViper())
			if err != nil {
				return fmt.Errorf("google sheets is not configured: %w", err)
			}

			l, closeStore, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
			if err != nil {
				return err
			}

			if err := exportReport(ctx, writer, l.Query(criteria), criteria, time.Now()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatSuccess("Export complete")) //nolint:forbidigo // User-facing output
			if id := writer.SpreadsheetID(); id != "" {
				fmt.Fprintln(out, cli.FormatInfo("https://docs.google.com/spreadsheets/d/"+id)) //nolint:forbidigo // User-facing output
			}
			return nil
		},
	}

	addCriteriaFlags(cmd, &flags)

	return cmd
}

// exportReport builds the report for records and hands it to w.
func exportReport(ctx context.Context, w sheets.ReportWriter, records []model.Record, c query.Criteria, now time.Time) error {
	report := sheets.NewReport(records, describeCriteria(c), now)

	slog.Info("Exporting report",
		"records", len(records),
		"filter", report.Filter)

	if err := w.Write(ctx, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
