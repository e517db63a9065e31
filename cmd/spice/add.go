package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spice-tracker/internal/cli"
	"github.com/Veraticus/spice-tracker/internal/ledger"
	"github.com/Veraticus/spice-tracker/internal/model"
)

func addCmd() *cobra.Command {
	var flags fieldFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense",
		Long: `Record a new income or expense.

Without flags you are asked for each field in turn. With flags the record is
added directly; --amount is required and the date defaults to today.

Examples:
  spice add
  spice add --type expense --category Food --amount 12.50 --desc "Lunch"
  spice add -t income -c Salary -a 2500 -d 2024-03-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAdd(cmd, flags)
		},
	}

	addFieldFlags(cmd, &flags)

	return cmd
}

func runAdd(cmd *cobra.Command, flags fieldFlags) error {
	ctx := cmd.Context()

	l, closeStore, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	fields, err := addFields(cmd, flags, l)
	if err != nil {
		return err
	}

	id, err := l.Add(ctx, fields)
	if err != nil {
		return err
	}

	rec, err := l.Get(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Added record %d", id))) //nolint:forbidigo // User-facing output
	return cli.WriteRecords(out, []model.Record{rec})
}

func addFields(cmd *cobra.Command, flags fieldFlags, l *ledger.Ledger) (model.Fields, error) {
	base := model.Fields{
		Type: model.TypeExpense,
		Date: model.NewDate(l.Now()),
	}

	if !anyFieldFlag(cmd) {
		prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), l.Now)
		return prompter.PromptFields(cmd.Context(), base)
	}

	if !cmd.Flags().Changed("amount") {
		return model.Fields{}, fmt.Errorf("--amount is required when adding with flags")
	}
	return flags.apply(cmd, base.Normalize())
}
