package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spice-tracker/internal/cli"
	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/query"
	"github.com/Veraticus/spice-tracker/internal/report"
)

func categoriesCmd() *cobra.Command {
	var (
		flags criteriaFlags
		width int
		names bool
	)

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show totals per category",
		Long: `Chart how much went to (or came from) each category.

--type picks expense (default) or income. Date and search filters narrow the
records first.

Examples:
  spice categories
  spice categories --type income --from 2024-01-01
  spice categories --names`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if names {
				writeCategoryNames(cmd)
				return nil
			}

			t, ok := model.ParseTransactionType(flags.typ)
			if !ok {
				return fmt.Errorf("%w: %q", model.ErrInvalidType, flags.typ)
			}

			criteria, err := flags.criteria()
			if err != nil {
				return err
			}

			l, closeStore, err := openLedger(cmd.Context())
			if err != nil {
				return err
			}
			defer closeStore()

			totals := report.GroupByCategory(l.Query(criteria), t)

			fmt.Fprintln(out, cli.FormatTitle(string(t)+" by category")) //nolint:forbidigo // User-facing output
			if filter := describeCriteria(query.Criteria{
				StartDate: criteria.StartDate,
				EndDate:   criteria.EndDate,
				Search:    criteria.Search,
			}); filter != "" {
				fmt.Fprintln(out, cli.SubtleStyle.Render("Filter: "+filter)) //nolint:forbidigo // User-facing output
			}
			fmt.Fprintln(out, cli.RenderCategoryBars(report.SortedCategories(totals), width)) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.typ, "type", "t", "expense", "expense or income")
	cmd.Flags().StringVar(&flags.from, "from", "", "earliest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.to, "to", "", "latest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.search, "search", "", "only records whose description contains this text")
	cmd.Flags().IntVarP(&width, "width", "w", cli.DefaultBarWidth, "width of the longest bar")
	cmd.Flags().BoolVar(&names, "names", false, "list the valid category names instead")

	return cmd
}

func writeCategoryNames(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	for _, t := range []model.TransactionType{model.TypeExpense, model.TypeIncome} {
		fmt.Fprintf(out, "%s: %s\n", //nolint:forbidigo // User-facing output
			cli.BoldStyle.Render(string(t)),
			strings.Join(model.Categories(t), ", "))
	}
}
