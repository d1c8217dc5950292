package usecase

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/yourusername/storefront/internal/domain/entity"
	"github.com/yourusername/storefront/internal/infrastructure/storage"
)

var errBackend = errors.New("backend unavailable")

// flakyKV yozuv va o'qish xatolarini simulyatsiya qiladi
type flakyKV struct {
	*storage.MemoryKVStore
	failWrite bool
	failRead  bool
	writes    int
}

func newFlakyKV() *flakyKV {
	return &flakyKV{MemoryKVStore: storage.NewMemoryKVStore()}
}

func (f *flakyKV) Read(ctx context.Context, key string) (string, error) {
	if f.failRead {
		return "", errBackend
	}
	return f.MemoryKVStore.Read(ctx, key)
}

func (f *flakyKV) Write(ctx context.Context, key, value string) error {
	if f.failWrite {
		return errBackend
	}
	f.writes++
	return f.MemoryKVStore.Write(ctx, key, value)
}

func newTestLogger(t *testing.T) (logrus.FieldLogger, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

func floatPtr(v float64) *float64 { return &v }

func sampleDraft(name string) entity.ProductDraft {
	return entity.ProductDraft{
		Name:        name,
		Price:       19.99,
		Description: "A sample product for tests",
		Image:       "https://example.com/item.jpg",
		Category:    "accessories",
		Stock:       5,
	}
}
