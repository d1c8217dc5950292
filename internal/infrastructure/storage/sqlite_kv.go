package storage

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/yourusername/storefront/internal/domain/repository"
)

// SQLiteKVStore SQLite asosidagi KV ombor
type SQLiteKVStore struct {
	db *sql.DB
}

// NewSQLiteKVStore SQLite faylini ochish va sxemani yaratish
func NewSQLiteKVStore(dbPath string) (*SQLiteKVStore, error) {
	if dbPath == "" {
		return nil, errors.New("db path bo'sh bo'lmasligi kerak")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, errors.Wrap(err, "db papkasini yaratib bo'lmadi")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "sqlite ochilmadi")
	}

	if err := createKVSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteKVStore{db: db}, nil
}

func createKVSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`
	if _, err := db.Exec(schema); err != nil {
		return errors.Wrap(err, "schema yaratib bo'lmadi")
	}
	return nil
}

// Read kalit qiymatini o'qish
func (s *SQLiteKVStore) Read(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", repository.ErrKeyNotFound
	}
	if err != nil {
		return "", errors.Wrapf(err, "read %q", key)
	}
	return value, nil
}

// Write qiymatni yozish
func (s *SQLiteKVStore) Write(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, time.Now().UTC())
	if err != nil {
		return errors.Wrapf(err, "write %q", key)
	}
	return nil
}

// Remove kalitni o'chirish
func (s *SQLiteKVStore) Remove(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return errors.Wrapf(err, "remove %q", key)
	}
	return nil
}

// Close bazani yopish
func (s *SQLiteKVStore) Close() error {
	return s.db.Close()
}
