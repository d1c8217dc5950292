package usecase

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/yourusername/storefront/internal/domain/repository"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type snapshotState int

const (
	snapshotMissing snapshotState = iota
	snapshotLoaded
	snapshotCorrupt
)

// loadSnapshot kalitdagi JSON massivni o'qish.
// Buzilgan JSON uchun snapshotCorrupt va decode xatosi qaytadi; ombor xatosi esa alohida.
func loadSnapshot[T any](ctx context.Context, kv repository.KVStore, key string) ([]T, snapshotState, error) {
	raw, err := kv.Read(ctx, key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return nil, snapshotMissing, nil
	}
	if err != nil {
		return nil, snapshotMissing, errors.Wrapf(err, "failed to read %q", key)
	}

	var items []T
	if err := json.UnmarshalFromString(raw, &items); err != nil {
		return nil, snapshotCorrupt, err
	}
	return items, snapshotLoaded, nil
}

// saveSnapshot to'liq kolleksiyani yozish
func saveSnapshot[T any](ctx context.Context, kv repository.KVStore, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.MarshalToString(items)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %q", key)
	}
	if err := kv.Write(ctx, key, raw); err != nil {
		return errors.Wrapf(err, "failed to write %q", key)
	}
	return nil
}
