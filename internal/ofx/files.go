package ofx

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/spice-tracker/internal/model"
)

// ParseFiles parses several statements concurrently, at most workers at a
// time. Entries are returned grouped by file in the order of paths. done,
// when set, is called once per finished file.
func (p *Parser) ParseFiles(ctx context.Context, paths []string, workers int, done func(path string)) ([]Entry, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([][]Entry, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			entries, err := p.parsePath(gctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = entries
			if done != nil {
				done(path)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Entry
	for _, entries := range results {
		all = append(all, entries...)
	}
	return all, nil
}

func (p *Parser) parsePath(ctx context.Context, path string) ([]Entry, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return p.ParseFile(ctx, f)
}

// Prepare picks the entries worth importing as of now. Lines seen before
// (same account and FITID) are dropped, as are zero amounts and lines
// posted after today. It reports how many lines were skipped.
func Prepare(entries []Entry, now time.Time) ([]model.Fields, int) {
	seen := make(map[string]bool, len(entries))
	fields := make([]model.Fields, 0, len(entries))
	skipped := 0

	for _, e := range entries {
		if e.FITID != "" {
			if seen[e.Key()] {
				skipped++
				continue
			}
			seen[e.Key()] = true
		}

		if err := model.Validate(e.Fields.Amount, e.Fields.Date, now); err != nil {
			slog.Warn("Skipping statement line",
				"fitid", e.FITID,
				"account", e.AccountID,
				"date", e.Fields.Date,
				"reason", err)
			skipped++
			continue
		}

		fields = append(fields, e.Fields)
	}

	return fields, skipped
}
