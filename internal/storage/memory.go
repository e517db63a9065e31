package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStorage is an in-process service.KVStore. It backs dry runs and
// tests, and can be told to fail writes.
type MemoryStorage struct {
	values  map[string][]byte
	saveErr error
	saves   int
	mu      sync.Mutex
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

// Load returns a copy of the value stored under key.
func (m *MemoryStorage) Load(ctx context.Context, key string) ([]byte, error) {
	if err := validateRead(ctx, key); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return append([]byte(nil), value...), nil
}

// Save stores a copy of value under key, unless a failure was injected.
func (m *MemoryStorage) Save(ctx context.Context, key string, value []byte) error {
	if err := validateWrite(ctx, key, value); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	m.values[key] = append([]byte(nil), value...)
	m.saves++
	return nil
}

// FailSaves makes every subsequent Save return err. Pass nil to recover.
func (m *MemoryStorage) FailSaves(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// SaveCount reports how many saves succeeded.
func (m *MemoryStorage) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Close is a no-op.
func (m *MemoryStorage) Close() error {
	return nil
}
