package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spice-tracker/internal/cli"
	"github.com/Veraticus/spice-tracker/internal/model"
)

func deleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a record",
		Long: `Delete a record after confirming. Use --force to skip the question.

Examples:
  spice delete 1710504000000
  spice delete 1710504000000 --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, args[0], force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without asking")

	return cmd
}

func runDelete(cmd *cobra.Command, arg string, force bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	id, err := parseID(arg)
	if err != nil {
		return err
	}

	l, closeStore, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	rec, err := l.Get(id)
	if err != nil {
		return err
	}

	if !force {
		if err := cli.WriteRecords(out, []model.Record{rec}); err != nil {
			return err
		}

		prompter := cli.NewPrompter(cmd.InOrStdin(), out, l.Now)
		ok, err := prompter.Confirm(ctx, fmt.Sprintf("Delete record %d?", id))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, cli.FormatInfo("Nothing deleted")) //nolint:forbidigo // User-facing output
			return nil
		}
	}

	if err := l.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted record %d", id))) //nolint:forbidigo // User-facing output
	return nil
}
