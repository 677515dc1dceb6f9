package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Backend is a string key/value store. Get reports a missing key with
// ok=false and a nil error.
type Backend interface {
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error

	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Location is a non-sensitive description of where the data lives.
	Location() string
}

// MemoryBackend keeps keys in process memory. Used for tests and for
// throwaway sessions.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]string)}
}

func (m *MemoryBackend) Init(context.Context) error { return nil }
func (m *MemoryBackend) Load(context.Context) error { return nil }
func (m *MemoryBackend) Close() error               { return nil }
func (m *MemoryBackend) Location() string           { return "memory" }

func (m *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryBackend) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
