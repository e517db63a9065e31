package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/spice-tracker/internal/cli"
	"github.com/Veraticus/spice-tracker/internal/model"
)

func editCmd() *cobra.Command {
	var flags fieldFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an existing record",
		Long: `Change an existing record. The id never changes.

Without flags you are asked for each field, with the current value offered as
the default. With flags only the given fields change.

Examples:
  spice edit 1710504000000
  spice edit 1710504000000 --amount 14.25
  spice edit 1710504000000 --type income --category Freelance`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], flags)
		},
	}

	addFieldFlags(cmd, &flags)

	return cmd
}

func runEdit(cmd *cobra.Command, arg string, flags fieldFlags) error {
	ctx := cmd.Context()

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

	var fields model.Fields
	if anyFieldFlag(cmd) {
		fields, err = flags.apply(cmd, rec.Fields())
	} else {
		prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), l.Now)
		fields, err = prompter.PromptFields(ctx, rec.Fields())
	}
	if err != nil {
		return err
	}

	if err := l.Edit(ctx, id, fields); err != nil {
		return err
	}

	updated, err := l.Get(id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Updated record %d", id))) //nolint:forbidigo // User-facing output
	return cli.WriteRecords(out, []model.Record{updated})
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id %q", s)
	}
	return id, nil
}
