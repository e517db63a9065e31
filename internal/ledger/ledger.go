// Package ledger owns the tracker's record collection and keeps it in step
// with the key-value store.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/spice-tracker/internal/common"
	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/query"
	"github.com/Veraticus/spice-tracker/internal/service"
	"github.com/Veraticus/spice-tracker/internal/storage"
)

// Ledger holds every record in memory. Mutations build a new slice, save it
// as a whole, and only then replace the in-memory copy.
type Ledger struct {
	store   service.KVStore
	clock   func() time.Time
	logger  *slog.Logger
	records []model.Record
	mu      sync.RWMutex
}

var _ service.Ledger = (*Ledger)(nil)

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the source of "now" used for date validation and ids.
func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) {
		if clock != nil {
			l.clock = clock
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// ImportError reports the first invalid entry of an import batch.
type ImportError struct {
	Err   error
	Index int
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("entry %d: %v", e.Index+1, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// Open loads the stored collection. A store with nothing saved yet yields an
// empty ledger.
func Open(ctx context.Context, store service.KVStore, opts ...Option) (*Ledger, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", common.ErrInvalidConfig)
	}

	l := &Ledger{
		store:  store,
		clock:  time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	data, err := store.Load(ctx, service.RecordsKey)
	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
		l.logger.Debug("No stored records, starting empty")
		return l, nil
	case err != nil:
		return nil, common.NewPersistenceError("load", service.RecordsKey, err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &l.records); err != nil {
			return nil, common.NewPersistenceError("decode", service.RecordsKey, err)
		}
	}

	l.logger.Debug("Loaded records", "count", len(l.records))
	return l, nil
}

// Add validates fields, assigns a fresh id and saves the new record.
func (l *Ledger) Add(ctx context.Context, fields model.Fields) (int64, error) {
	fields = fields.Normalize()
	if err := l.validate(fields); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id := nextID(l.clock(), l.records)
	next := make([]model.Record, 0, len(l.records)+1)
	next = append(next, l.records...)
	next = append(next, fields.Record(id))

	if err := l.commit(ctx, next); err != nil {
		return 0, err
	}

	l.logger.Debug("Added record", "id", id, "type", fields.Type, "category", fields.Category)
	return id, nil
}

// Edit replaces every editable field of the record with the given id.
func (l *Ledger) Edit(ctx context.Context, id int64, fields model.Fields) error {
	fields = fields.Normalize()
	if err := l.validate(fields); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := indexOf(l.records, id)
	if idx < 0 {
		return fmt.Errorf("%w: record %d", common.ErrNotFound, id)
	}

	next := make([]model.Record, len(l.records))
	copy(next, l.records)
	next[idx] = fields.Record(id)

	if err := l.commit(ctx, next); err != nil {
		return err
	}

	l.logger.Debug("Edited record", "id", id)
	return nil
}

// Delete removes the record with the given id. Callers confirm with the
// user before calling.
func (l *Ledger) Delete(ctx context.Context, id int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := indexOf(l.records, id)
	if idx < 0 {
		return fmt.Errorf("%w: record %d", common.ErrNotFound, id)
	}

	next := make([]model.Record, 0, len(l.records)-1)
	next = append(next, l.records[:idx]...)
	next = append(next, l.records[idx+1:]...)

	if err := l.commit(ctx, next); err != nil {
		return err
	}

	l.logger.Debug("Deleted record", "id", id)
	return nil
}

// Import adds a batch of records in one commit. Every entry is validated
// before anything is written; the first invalid one aborts the import.
func (l *Ledger) Import(ctx context.Context, entries []model.Fields) ([]int64, error) {
	if len(entries) == 0 {
		return nil, common.ErrNoRecords
	}

	normalized := make([]model.Fields, len(entries))
	for i, entry := range entries {
		normalized[i] = entry.Normalize()
		if err := l.validate(normalized[i]); err != nil {
			return nil, &ImportError{Index: i, Err: err}
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]model.Record, 0, len(l.records)+len(normalized))
	next = append(next, l.records...)

	ids := make([]int64, len(normalized))
	for i, fields := range normalized {
		ids[i] = nextID(l.clock(), next)
		next = append(next, fields.Record(ids[i]))
	}

	if err := l.commit(ctx, next); err != nil {
		return nil, err
	}

	l.logger.Info("Imported records", "count", len(ids))
	return ids, nil
}

// Get returns the record with the given id.
func (l *Ledger) Get(id int64) (model.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	idx := indexOf(l.records, id)
	if idx < 0 {
		return model.Record{}, fmt.Errorf("%w: record %d", common.ErrNotFound, id)
	}
	return l.records[idx], nil
}

// Records returns a copy of the collection in insertion order.
func (l *Ledger) Records() []model.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.Record, len(l.records))
	copy(out, l.records)
	return out
}

// Query runs the filter pipeline over the collection.
func (l *Ledger) Query(c query.Criteria) []model.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return query.Apply(l.records, c)
}

// Now returns the ledger's notion of the current time.
func (l *Ledger) Now() time.Time {
	return l.clock()
}

func (l *Ledger) validate(fields model.Fields) error {
	if err := fields.Validate(l.clock()); err != nil {
		return common.NewUserError(model.UserMessage(err), err)
	}
	return nil
}

// commit must be called with the write lock held.
func (l *Ledger) commit(ctx context.Context, next []model.Record) error {
	data, err := json.Marshal(next)
	if err != nil {
		return common.NewPersistenceError("encode", service.RecordsKey, err)
	}

	if err := l.store.Save(ctx, service.RecordsKey, data); err != nil {
		l.logger.Error("Failed to save records", "error", err)
		return common.NewPersistenceError("save", service.RecordsKey, err)
	}

	l.records = next
	return nil
}

// nextID derives an id from the clock, stepping past the largest existing id
// when the clock has not moved on.
func nextID(now time.Time, records []model.Record) int64 {
	id := now.UnixMilli()
	var maxID int64
	for _, r := range records {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	if id <= maxID {
		id = maxID + 1
	}
	return id
}

func indexOf(records []model.Record, id int64) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
