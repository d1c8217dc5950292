package repository

import (
	"context"

	"github.com/pkg/errors"
)

// ErrKeyNotFound kalit omborda yo'q
var ErrKeyNotFound = errors.New("key not found")

// Saqlash kalitlari
const (
	KeyProducts = "products"
	KeyCart     = "cart"
	KeyUser     = "user"
	KeyTheme    = "theme"
)

// KVStore matnli qiymatlarni kalit bo'yicha saqlovchi ombor
type KVStore interface {
	// Read kalit qiymatini o'qish; yo'q bo'lsa ErrKeyNotFound
	Read(ctx context.Context, key string) (string, error)

	// Write qiymatni yozish (oxirgi yozgan yutadi)
	Write(ctx context.Context, key, value string) error

	// Remove kalitni o'chirish; yo'q kalit xato emas
	Remove(ctx context.Context, key string) error
}
