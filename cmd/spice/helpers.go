package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/spice-tracker/internal/cli"
	"github.com/Veraticus/spice-tracker/internal/common"
	"github.com/Veraticus/spice-tracker/internal/config"
	"github.com/Veraticus/spice-tracker/internal/ledger"
	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/query"
	"github.com/Veraticus/spice-tracker/internal/storage"
)

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.DatabasePath(viper.GetViper())

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// openLedger loads the record collection and applies the stored theme to
// terminal output. The returned function closes the database.
func openLedger(ctx context.Context) (*ledger.Ledger, func(), error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	closeStore := func() {
		if closeErr := store.Close(); closeErr != nil {
			common.LogError(closeErr, "failed to close storage", common.Fields{
				"path": config.DatabasePath(viper.GetViper()),
			})
		}
	}

	l, err := ledger.Open(ctx, store, ledger.WithLogger(slog.Default()))
	if err != nil {
		closeStore()
		return nil, nil, err
	}

	theme, err := l.Theme(ctx)
	if err != nil {
		slog.Warn("Failed to load theme", "error", err)
	}
	applyTheme(theme)

	return l, closeStore, nil
}

// applyTheme switches the terminal palette.
func applyTheme(t ledger.Theme) {
	if t == ledger.ThemeDark {
		cli.UsePalette(cli.DarkPalette)
		return
	}
	cli.UsePalette(cli.LightPalette)
}

// criteriaFlags are the filter, sort and search flags shared by the
// commands that show a query result.
type criteriaFlags struct {
	typ      string
	category string
	sort     string
	from     string
	to       string
	search   string
}

func addCriteriaFlags(cmd *cobra.Command, f *criteriaFlags) {
	cmd.Flags().StringVarP(&f.typ, "type", "t", "all", "record type (all, expense, income)")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "only this category")
	cmd.Flags().StringVarP(&f.sort, "sort", "s", "date-desc", "sort order (date-desc, date-asc, price-desc, price-asc)")
	cmd.Flags().StringVar(&f.from, "from", "", "earliest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "latest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.search, "search", "", "only records whose description contains this text")
}

// criteria turns the flag values into query criteria.
func (f criteriaFlags) criteria() (query.Criteria, error) {
	var c query.Criteria
	var err error

	if c.Type, err = query.ParseType(f.typ); err != nil {
		return query.Criteria{}, err
	}
	if c.Sort, err = query.ParseSort(f.sort); err != nil {
		return query.Criteria{}, err
	}
	if c.Category, err = parseCategory(c.Type, f.category); err != nil {
		return query.Criteria{}, err
	}
	if f.from != "" {
		if c.StartDate, err = model.ParseDate(f.from); err != nil {
			return query.Criteria{}, fmt.Errorf("invalid --from: %w", err)
		}
	}
	if f.to != "" {
		if c.EndDate, err = model.ParseDate(f.to); err != nil {
			return query.Criteria{}, fmt.Errorf("invalid --to: %w", err)
		}
	}
	c.Search = strings.TrimSpace(f.search)

	return c, nil
}

// parseCategory resolves a category name in any case. With a type filter
// the category must belong to that type.
func parseCategory(t query.TypeFilter, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, query.CategoryAll) {
		return "", nil
	}

	types := []model.TransactionType{model.TypeExpense, model.TypeIncome}
	if t == query.TypeExpense || t == query.TypeIncome {
		types = []model.TransactionType{model.TransactionType(t)}
	}

	for _, typ := range types {
		if c, ok := model.LookupCategory(typ, name); ok {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", model.ErrInvalidCategory, name)
}

// describeCriteria renders the active criteria for report headers.
func describeCriteria(c query.Criteria) string {
	var parts []string
	if c.Type != "" && c.Type != query.TypeAll {
		parts = append(parts, "type "+string(c.Type))
	}
	if c.Category != "" && c.Category != query.CategoryAll {
		parts = append(parts, "category "+c.Category)
	}
	if c.StartDate != "" {
		parts = append(parts, "from "+c.StartDate.String())
	}
	if c.EndDate != "" {
		parts = append(parts, "to "+c.EndDate.String())
	}
	if c.Search != "" {
		parts = append(parts, fmt.Sprintf("matching %q", c.Search))
	}
	return strings.Join(parts, ", ")
}

// fieldFlags set record fields without the interactive form.
type fieldFlags struct {
	typ      string
	category string
	amount   string
	date     string
	desc     string
}

func addFieldFlags(cmd *cobra.Command, f *fieldFlags) {
	cmd.Flags().StringVarP(&f.typ, "type", "t", "", "expense or income")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category name")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount, always positive")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVarP(&f.desc, "desc", "m", "", "description")
}

// anyFieldFlag reports whether the user set at least one field flag.
func anyFieldFlag(cmd *cobra.Command) bool {
	for _, name := range []string{"type", "category", "amount", "date", "desc"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// apply overlays the flags the user set on base. Unset flags keep base's
// values; a new type without a category resets the category.
func (f fieldFlags) apply(cmd *cobra.Command, base model.Fields) (model.Fields, error) {
	fields := base
	changed := cmd.Flags().Changed

	if changed("type") {
		t, ok := model.ParseTransactionType(f.typ)
		if !ok {
			return model.Fields{}, fmt.Errorf("%w: %q", model.ErrInvalidType, f.typ)
		}
		fields = fields.WithType(t)
	}
	if changed("category") {
		c, ok := model.LookupCategory(fields.Type, f.category)
		if !ok {
			return model.Fields{}, fmt.Errorf("%w: %q", model.ErrInvalidCategory, f.category)
		}
		fields.Category = c
	}
	if changed("amount") {
		amount, err := cli.ParseAmount(f.amount)
		if err != nil {
			return model.Fields{}, err
		}
		fields.Amount = amount
	}
	if changed("date") {
		fields.Date = model.Date(strings.TrimSpace(f.date))
	}
	if changed("desc") {
		fields.Desc = f.desc
	}

	return fields, nil
}
