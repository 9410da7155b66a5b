package testutil

import (
	"context"
	"sync"
	"sync/atomic"
)

// MemoryKVStore is an in-process key/value store for service tests.
type MemoryKVStore struct {
	mu   sync.Mutex
	data map[string]string
	// NotFound is returned for missing keys.
	NotFound error
}

func NewMemoryKVStore(notFound error) *MemoryKVStore {
	return &MemoryKVStore{data: map[string]string{}, NotFound: notFound}
}

func (m *MemoryKVStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", m.NotFound
	}
	return v, nil
}

func (m *MemoryKVStore) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKVStore) Close() error { return nil }

// Raw returns the stored value for key without any error handling.
func (m *MemoryKVStore) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// FailOnNthPutStore wraps a MemoryKVStore and injects Err on the Nth Put
// call, counted from 1. Reads pass through.
type FailOnNthPutStore struct {
	*MemoryKVStore
	FailOn int32
	Err    error
	count  atomic.Int32
}

func (f *FailOnNthPutStore) Put(ctx context.Context, key, value string) error {
	if f.count.Add(1) == f.FailOn {
		return f.Err
	}
	return f.MemoryKVStore.Put(ctx, key, value)
}
