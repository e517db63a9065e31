package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spice-tracker/internal/cli"
	"github.com/Veraticus/spice-tracker/internal/ledger"
)

func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light]",
		Short:     "Show or set the display theme",
		Long:      `Show the current display theme, or switch between dark and light.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(ledger.ThemeDark), string(ledger.ThemeLight)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			l, closeStore, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if len(args) == 0 {
				theme, err := l.Theme(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Current theme: %s\n", theme) //nolint:forbidigo // User-facing output
				return nil
			}

			theme, err := ledger.ParseTheme(args[0])
			if err != nil {
				return err
			}
			if err := l.SetTheme(ctx, theme); err != nil {
				return err
			}
			applyTheme(theme)

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Theme set to %s", theme))) //nolint:forbidigo // User-facing output
			return nil
		},
	}
}
