// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/query"
)

// Keys under which the tracker keeps its state.
const (
	RecordsKey = "transaction-item"
	ThemeKey   = "theme"
)

// KVStore is the persistence contract: whole values stored under string keys.
type KVStore interface {
	// Load returns the value stored under key, or an error wrapping
	// storage.ErrKeyNotFound when nothing has been stored yet.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save overwrites the value stored under key.
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}

// Ledger is the owning application state exposed to the command layer.
type Ledger interface {
	Add(ctx context.Context, fields model.Fields) (int64, error)
	Edit(ctx context.Context, id int64, fields model.Fields) error
	Delete(ctx context.Context, id int64) error
	Get(id int64) (model.Record, error)
	Records() []model.Record
	Query(c query.Criteria) []model.Record
	Import(ctx context.Context, entries []model.Fields) ([]int64, error)
}
