package storage

import (
	"context"

	"github.com/yourusername/storefront/internal/domain/repository"
)

// PrefixedKVStore har bir kalitga prefiks qo'shib ichki omborga yo'naltiradi
type PrefixedKVStore struct {
	inner  repository.KVStore
	prefix string
}

// NewPrefixedKVStore masalan "chat:42:" prefiksli ko'rinish yaratish
func NewPrefixedKVStore(inner repository.KVStore, prefix string) *PrefixedKVStore {
	return &PrefixedKVStore{inner: inner, prefix: prefix}
}

// Read kalit qiymatini o'qish
func (p *PrefixedKVStore) Read(ctx context.Context, key string) (string, error) {
	return p.inner.Read(ctx, p.prefix+key)
}

// Write qiymatni yozish
func (p *PrefixedKVStore) Write(ctx context.Context, key, value string) error {
	return p.inner.Write(ctx, p.prefix+key, value)
}

// Remove kalitni o'chirish
func (p *PrefixedKVStore) Remove(ctx context.Context, key string) error {
	return p.inner.Remove(ctx, p.prefix+key)
}
