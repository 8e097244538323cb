// Package storage keeps receipt images in object storage.
package storage

import (
	"context"
	"sync"

	"github.com/spend-smart/backend/internal/application/adapter"
)

// MemoryImageStore keeps images in a map. Used by tests and local runs without MinIO.
type MemoryImageStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

var _ adapter.ImageStore = (*MemoryImageStore)(nil)

// NewMemoryImageStore constructs an empty MemoryImageStore.
func NewMemoryImageStore() *MemoryImageStore {
	return &MemoryImageStore{
		objects: make(map[string][]byte),
	}
}

// Put stores a copy of data under key.
func (m *MemoryImageStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	m.objects[key] = buf
	return nil
}

// Get returns the bytes stored under key.
func (m *MemoryImageStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[key]
	if !ok {
		return nil, ErrImageNotFound
	}
	return data, nil
}

// Delete removes key. Used by tests to simulate a lost object.
func (m *MemoryImageStore) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
}
