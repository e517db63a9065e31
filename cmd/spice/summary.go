package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spice-tracker/internal/cli"
	"github.com/Veraticus/spice-tracker/internal/report"
)

func summaryCmd() *cobra.Command {
	var flags criteriaFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show income, expense and balance",
		Long: `Show total income, total expense and the balance of the records that
match the given filters.

Examples:
  spice summary
  spice summary --from 2024-03-01 --to 2024-03-31`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			if filter := describeCriteria(criteria); filter != "" {
				fmt.Fprintln(out, cli.SubtleStyle.Render("Filter: "+filter)) //nolint:forbidigo // User-facing output
			}
			fmt.Fprintln(out, cli.RenderSummary(report.Summarize(records))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	addCriteriaFlags(cmd, &flags)

	return cmd
}
