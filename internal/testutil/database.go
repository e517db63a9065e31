// Package testutil provides test helpers for setting up storage and ledgers.
package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Veraticus/spice-tracker/internal/ledger"
	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/service"
	"github.com/Veraticus/spice-tracker/internal/storage"
)

// SetupTestDB creates a new in-memory SQLite database with every migration
// applied. It is closed when the test ends.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SeedRecords stores records as the persisted collection, replacing
// whatever was there.
func SeedRecords(t *testing.T, store service.KVStore, records []model.Record) {
	t.Helper()

	if records == nil {
		records = []model.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("failed to encode records: %v", err)
	}
	if err := store.Save(context.Background(), service.RecordsKey, data); err != nil {
		t.Fatalf("failed to seed records: %v", err)
	}
}

// SetupTestLedger opens a ledger over a fresh test database seeded with
// records.
//
// Example:
//
//	l := testutil.SetupTestLedger(t,
//		records.NewBuilder().WithFixture(records.FixtureMarch).Build(),
//		ledger.WithClock(fixedClock),
//	)
func SetupTestLedger(t *testing.T, records []model.Record, opts ...ledger.Option) *ledger.Ledger {
	t.Helper()

	store := SetupTestDB(t)
	SeedRecords(t, store, records)

	l, err := ledger.Open(context.Background(), store, opts...)
	if err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}
	return l
}
