package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Veraticus/tally/internal/common"
)

// ErrQuotaExceeded is returned by a MemoryStore whose writes are set to fail.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// MemoryStore is a map-backed BlobStore for tests and ephemeral sessions.
type MemoryStore struct {
	data      map[string][]byte
	failWrite error
	mu        sync.Mutex
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns a copy of the blob under key.
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, common.ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value under key.
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failWrite != nil {
		return m.failWrite
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }

// FailWrites makes every following Set return err. A nil err restores writes.
func (m *MemoryStore) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrite = err
}

// Put seeds raw bytes, bypassing FailWrites.
func (m *MemoryStore) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
}
