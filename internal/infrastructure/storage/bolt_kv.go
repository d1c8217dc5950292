package storage

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/yourusername/storefront/internal/domain/repository"
	bolt "go.etcd.io/bbolt"
)

var boltBucket = []byte("storefront")

// BoltKVStore bbolt faylidagi KV ombor
type BoltKVStore struct {
	db *bolt.DB
}

// NewBoltKVStore bbolt faylini ochish
func NewBoltKVStore(path string) (*BoltKVStore, error) {
	if path == "" {
		return nil, errors.New("bolt path bo'sh bo'lmasligi kerak")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "bolt papkasini yaratib bo'lmadi")
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "bolt ochilmadi")
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "bucket yaratib bo'lmadi")
	}

	return &BoltKVStore{db: db}, nil
}

// Read kalit qiymatini o'qish
func (b *BoltKVStore) Read(ctx context.Context, key string) (string, error) {
	var value string
	found := false
	err := b.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(boltBucket).Get([]byte(key))
		if raw == nil {
			return nil
		}
		// raw faqat tranzaksiya ichida amal qiladi
		value = string(raw)
		found = true
		return nil
	})
	if err != nil {
		return "", errors.Wrapf(err, "read %q", key)
	}
	if !found {
		return "", repository.ErrKeyNotFound
	}
	return value, nil
}

// Write qiymatni yozish
func (b *BoltKVStore) Write(ctx context.Context, key, value string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), []byte(value))
	})
	return errors.Wrapf(err, "write %q", key)
}

// Remove kalitni o'chirish
func (b *BoltKVStore) Remove(ctx context.Context, key string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Delete([]byte(key))
	})
	return errors.Wrapf(err, "remove %q", key)
}

// Close faylni yopish
func (b *BoltKVStore) Close() error {
	return b.db.Close()
}
