package usecase

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/storefront/internal/domain/entity"
	"github.com/yourusername/storefront/internal/domain/repository"
)

func TestNewCatalog_SeedsDemoProducts(t *testing.T) {
	log, _ := newTestLogger(t)
	kv := newFlakyKV()

	c, err := NewCatalog(context.Background(), kv, log)
	require.NoError(t, err)

	assert.Len(t, c.All(), 12)
	assert.Equal(t, 0, kv.writes, "seeding must not write")
}

func TestCatalog_AddAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	log, _ := newTestLogger(t)
	c, err := NewCatalogWithSeed(ctx, newFlakyKV(), nil, log)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		p, err := c.Add(ctx, sampleDraft("Item"))
		require.NoError(t, err)
		assert.Equal(t, int64(i), p.ID)
	}

	got, ok := c.GetByID(2)
	require.True(t, ok)
	if diff := cmp.Diff(sampleDraft("Item").WithID(2), got); diff != "" {
		t.Errorf("GetByID mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_AddUsesMaxIDPlusOne(t *testing.T) {
	ctx := context.Background()
	log, _ := newTestLogger(t)
	seed := []entity.Product{{ID: 7, Name: "Seven"}, {ID: 3, Name: "Three"}}
	c, err := NewCatalogWithSeed(ctx, newFlakyKV(), seed, log)
	require.NoError(t, err)

	p, err := c.Add(ctx, sampleDraft("Next"))
	require.NoError(t, err)
	assert.Equal(t, int64(8), p.ID)
}

func TestCatalog_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	log, _ := newTestLogger(t)
	kv := newFlakyKV()

	c, err := NewCatalog(ctx, kv, log)
	require.NoError(t, err)
	created, err := c.Add(ctx, sampleDraft("Persisted"))
	require.NoError(t, err)

	reopened, err := NewCatalog(ctx, kv, log)
	require.NoError(t, err)
	if diff := cmp.Diff(c.All(), reopened.All()); diff != "" {
		t.Errorf("reopened catalog mismatch (-want +got):\n%s", diff)
	}
	_, ok := reopened.GetByID(created.ID)
	assert.True(t, ok)
}

func TestCatalog_Update(t *testing.T) {
	ctx := context.Background()
	log, _ := newTestLogger(t)
	c, err := NewCatalog(ctx, newFlakyKV(), log)
	require.NoError(t, err)

	draft := sampleDraft("Renamed")
	require.NoError(t, c.Update(ctx, 1, draft))

	got, ok := c.GetByID(1)
	require.True(t, ok)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, int64(1), got.ID)
}

func TestCatalog_UnknownIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	log, _ := newTestLogger(t)
	kv := newFlakyKV()
	c, err := NewCatalog(ctx, kv, log)
	require.NoError(t, err)
	before := c.All()

	err = c.Update(ctx, 999, sampleDraft("Ghost"))
	assert.ErrorIs(t, err, ErrProductNotFound)
	err = c.Delete(ctx, 999)
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.Equal(t, before, c.All())
	assert.Equal(t, 0, kv.writes)
}

func TestCatalog_Delete(t *testing.T) {
	ctx := context.Background()
	log, _ := newTestLogger(t)
	c, err := NewCatalog(ctx, newFlakyKV(), log)
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, 5))
	_, ok := c.GetByID(5)
	assert.False(t, ok)
	assert.Len(t, c.All(), 11)
}

func TestCatalog_DeleteLastProductPersistsEmptyArray(t *testing.T) {
	ctx := context.Background()
	log, _ := newTestLogger(t)
	kv := newFlakyKV()
	c, err := NewCatalogWithSeed(ctx, kv, []entity.Product{{ID: 1, Name: "Only"}}, log)
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, 1))
	raw, err := kv.Read(ctx, repository.KeyProducts)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)

	// Bo'sh saqlangan katalog demo bilan almashtirilmaydi
	reopened, err := NewCatalog(ctx, kv, log)
	require.NoError(t, err)
	assert.Empty(t, reopened.All())
}

func TestCatalog_FailedWriteKeepsState(t *testing.T) {
	ctx := context.Background()
	log, _ := newTestLogger(t)
	kv := newFlakyKV()
	c, err := NewCatalog(ctx, kv, log)
	require.NoError(t, err)
	before := c.All()

	kv.failWrite = true
	_, err = c.Add(ctx, sampleDraft("Lost"))
	assert.ErrorIs(t, err, errBackend)
	assert.ErrorIs(t, c.Delete(ctx, 1), errBackend)
	assert.Equal(t, before, c.All())
}

func TestCatalog_CorruptSnapshotFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	log, hook := newTestLogger(t)
	kv := newFlakyKV()
	require.NoError(t, kv.Write(ctx, repository.KeyProducts, "{not json"))

	c, err := NewCatalog(ctx, kv, log)
	require.NoError(t, err)
	assert.Len(t, c.All(), 12)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestCatalog_ReadErrorFailsConstruction(t *testing.T) {
	log, _ := newTestLogger(t)
	kv := newFlakyKV()
	kv.failRead = true

	_, err := NewCatalog(context.Background(), kv, log)
	assert.ErrorIs(t, err, errBackend)
}

func TestCatalog_Reload(t *testing.T) {
	ctx := context.Background()
	log, _ := newTestLogger(t)
	kv := newFlakyKV()
	a, err := NewCatalog(ctx, kv, log)
	require.NoError(t, err)
	b, err := NewCatalog(ctx, kv, log)
	require.NoError(t, err)

	_, err = a.Add(ctx, sampleDraft("From A"))
	require.NoError(t, err)
	assert.Len(t, b.All(), 12)

	require.NoError(t, b.Reload(ctx))
	assert.Len(t, b.All(), 13)
}

func TestCatalog_ListFilterScenario(t *testing.T) {
	log, _ := newTestLogger(t)
	c, err := NewCatalog(context.Background(), newFlakyKV(), log)
	require.NoError(t, err)

	got := c.List(entity.ProductFilter{Category: "accessories", MinPrice: floatPtr(20)})

	var want []entity.Product
	for _, p := range DemoProducts() {
		if p.Category == "accessories" && p.Price >= 20 {
			want = append(want, p)
		}
	}
	require.NotEmpty(t, want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_ListDoesNotMutate(t *testing.T) {
	log, _ := newTestLogger(t)
	c, err := NewCatalog(context.Background(), newFlakyKV(), log)
	require.NoError(t, err)
	before := c.All()

	filtered := c.List(entity.ProductFilter{Query: "wireless"})
	if len(filtered) > 0 {
		filtered[0].Name = "mutated"
	}
	assert.Equal(t, before, c.All())
}

func TestCatalog_AddMany(t *testing.T) {
	ctx := context.Background()
	log, _ := newTestLogger(t)
	kv := newFlakyKV()
	c, err := NewCatalog(ctx, kv, log)
	require.NoError(t, err)

	created, err := c.AddMany(ctx, []entity.ProductDraft{sampleDraft("One"), sampleDraft("Two")})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, int64(13), created[0].ID)
	assert.Equal(t, int64(14), created[1].ID)
	assert.Equal(t, 1, kv.writes)
}
