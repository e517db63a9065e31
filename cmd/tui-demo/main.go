// Package main provides a demo program for the TUI
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/Veraticus/spice-tracker/internal/ledger"
	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/storage"
	"github.com/Veraticus/spice-tracker/internal/tui"
	"github.com/Veraticus/spice-tracker/internal/tui/themes"
)

var merchants = []string{
	"Whole Foods Market",
	"Amazon.com",
	"Shell Oil",
	"Netflix",
	"Starbucks",
	"Target",
	"Uber",
	"Chipotle",
	"CVS Pharmacy",
	"Home Depot",
}

func main() {
	// Browse an in-memory ledger filled with sample records
	ctx := context.Background()

	l, err := ledger.Open(ctx, storage.NewMemoryStorage())
	if err != nil {
		log.Fatal(err)
	}

	if _, err := l.Import(ctx, sampleRecords(100, time.Now())); err != nil {
		log.Fatal(err)
	}

	themeName := "light"
	if len(os.Args) > 1 {
		themeName = os.Args[1]
	}

	if err := tui.Run(ctx,
		tui.WithStore(l),
		tui.WithTheme(themes.GetTheme(themeName)),
		tui.WithSize(120, 40),
	); err != nil {
		// Use explicit error check to satisfy forbidigo
		_, _ = fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// sampleRecords spreads n records over the last 90 days. Roughly one in
// eight is income.
func sampleRecords(n int, now time.Time) []model.Fields {
	rng := rand.New(rand.NewPCG(42, 7)) //nolint:gosec // Demo data
	expenses := model.Categories(model.TypeExpense)
	income := model.Categories(model.TypeIncome)

	fields := make([]model.Fields, 0, n)
	for i := 0; i < n; i++ {
		date := model.NewDate(now.AddDate(0, 0, -rng.IntN(90)))

		if rng.IntN(8) == 0 {
			fields = append(fields, model.Fields{
				Type:     model.TypeIncome,
				Category: income[rng.IntN(len(income))],
				Desc:     "Deposit",
				Date:     date,
				Amount:   float64(500+rng.IntN(3000)) + 0.25*float64(rng.IntN(4)),
			})
			continue
		}

		fields = append(fields, model.Fields{
			Type:     model.TypeExpense,
			Category: expenses[rng.IntN(len(expenses))],
			Desc:     merchants[rng.IntN(len(merchants))],
			Date:     date,
			Amount:   float64(1+rng.IntN(250)) + 0.01*float64(rng.IntN(100)),
		})
	}
	return fields
}
