package storage

import (
	"context"
	"sync"

	"github.com/yourusername/storefront/internal/domain/repository"
)

// MemoryKVStore jarayon xotirasidagi kalit-qiymat ombori
type MemoryKVStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKVStore in-memory KV ombor yaratish
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{
		values: make(map[string]string),
	}
}

// Read kalit qiymatini o'qish
func (m *MemoryKVStore) Read(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.values[key]
	if !exists {
		return "", repository.ErrKeyNotFound
	}
	return value, nil
}

// Write qiymatni yozish
func (m *MemoryKVStore) Write(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

// Remove kalitni o'chirish
func (m *MemoryKVStore) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

// Len saqlangan kalitlar soni (test va diagnostika uchun)
func (m *MemoryKVStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.values)
}
