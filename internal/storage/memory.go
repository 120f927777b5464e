package storage

import (
	"context"
	"sync"
)

// memKV keeps values in process memory. Zero-setup default backend and
// the test double for everything above the KV port.
type memKV struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryRepository returns an adapter that persists nothing beyond
// the process lifetime.
func NewMemoryRepository() *Repository {
	return NewRepository(&memKV{values: make(map[string][]byte)}, "memory")
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *memKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Close() error {
	return nil
}
