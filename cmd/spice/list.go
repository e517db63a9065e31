package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spice-tracker/internal/cli"
	"github.com/Veraticus/spice-tracker/internal/report"
)

func listCmd() *cobra.Command {
	var (
		flags       criteriaFlags
		showSummary bool
		limit       int
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List records",
		Long: `List records, newest first unless told otherwise.

Filters combine: type and category first, then the date range, then the
description search.

Examples:
  spice list
  spice list --type expense --category Food
  spice list --sort price-desc --from 2024-01-01 --to 2024-03-31
  spice list --search coffee --summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, flags, showSummary, limit)
		},
	}

	addCriteriaFlags(cmd, &flags)
	cmd.Flags().BoolVar(&showSummary, "summary", false, "show totals of the listed records")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many records (0 for all)")

	return cmd
}

func runList(cmd *cobra.Command, flags criteriaFlags, showSummary bool, limit int) error {
	criteria, err := flags.criteria()
	if err != nil {
		return err
	}

	l, closeStore, err := openLedger(cmd.Context())
	if err != nil {
		return err
	}
	defer closeStore()

	records := l.Query(criteria)
	out := cmd.OutOrStdout()

	if len(records) == 0 {
		fmt.Fprintln(out, cli.InfoStyle.Render("No records found. Use 'spice add' to create one.")) //nolint:forbidigo // User-facing output
		return nil
	}

	shown := records
	if limit > 0 && limit < len(shown) {
		shown = shown[:limit]
	}
	if err := cli.WriteRecords(out, shown); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	if len(shown) < len(records) {
		fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("… %d more", len(records)-len(shown)))) //nolint:forbidigo // User-facing output
	}

	if showSummary {
		fmt.Fprintln(out)                                            //nolint:forbidigo // User-facing output
		fmt.Fprintln(out, cli.RenderSummary(report.Summarize(records))) //nolint:forbidigo // User-facing output
	}

	return nil
}
