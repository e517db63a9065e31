package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/spice-tracker/internal/tui"
	"github.com/Veraticus/spice-tracker/internal/tui/themes"
)

func browseCmd() *cobra.Command {
	var flags criteriaFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse records interactively",
		Long: `Open a full-screen table of your records with live search, type, category
and sort cycling, and a running summary of what is on screen.

Flags set the starting filters. Press ? inside for all keys.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			criteria, err := flags.criteria()
			if err != nil {
				return err
			}

			l, closeStore, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			theme, err := l.Theme(ctx)
			if err != nil {
				return err
			}

			return tui.Run(ctx,
				tui.WithStore(l),
				tui.WithTheme(themes.GetTheme(string(theme))),
				tui.WithCriteria(criteria),
			)
		},
	}

	addCriteriaFlags(cmd, &flags)

	return cmd
}
