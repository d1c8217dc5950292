package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/storefront/internal/domain/entity"
	"github.com/yourusername/storefront/internal/domain/repository"
)

func newTestSession(t *testing.T, kv repository.KVStore) *Session {
	t.Helper()
	log, _ := newTestLogger(t)
	s, err := NewSession(context.Background(), kv, log)
	require.NoError(t, err)
	return s
}

func TestSession_LoginAdmin(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyKV()
	s := newTestSession(t, kv)

	ok, err := s.Login(ctx, " Admin@Ecommerce.com ", "admin123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsAdmin())

	reopened := newTestSession(t, kv)
	u, ok := reopened.Current()
	require.True(t, ok)
	assert.Equal(t, "Admin User", u.Name)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	ok, err = s.Login(ctx, "admin@ecommerce.com", "ADMIN123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSession_LoginCustomerIsNotAdmin(t *testing.T) {
	s := newTestSession(t, newFlakyKV())

	ok, err := s.Login(context.Background(), "customer@ecommerce.com", "customer123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, s.IsAdmin())
}

func TestSession_LoginWrongPassword(t *testing.T) {
	kv := newFlakyKV()
	s := newTestSession(t, kv)

	ok, err := s.Login(context.Background(), "admin@ecommerce.com", "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, 0, kv.writes)
}

func TestSession_Logout(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyKV()
	s := newTestSession(t, kv)
	_, err := s.Login(ctx, "admin@ecommerce.com", "admin123")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))
	assert.False(t, s.IsAuthenticated())
	_, err = kv.Read(ctx, repository.KeyUser)
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestSession_Theme(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyKV()
	s := newTestSession(t, kv)
	assert.Equal(t, entity.ThemeLight, s.Theme())

	next, err := s.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.ThemeDark, next)

	raw, err := kv.Read(ctx, repository.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "dark", raw)
	assert.Equal(t, entity.ThemeDark, newTestSession(t, kv).Theme())

	assert.ErrorIs(t, s.SetTheme(ctx, "sepia"), ErrInvalidTheme)
	assert.Equal(t, entity.ThemeDark, s.Theme())
}

func TestSession_IgnoresBadStoredValues(t *testing.T) {
	ctx := context.Background()
	kv := newFlakyKV()
	require.NoError(t, kv.Write(ctx, repository.KeyUser, "not-json"))
	require.NoError(t, kv.Write(ctx, repository.KeyTheme, "purple"))

	s := newTestSession(t, kv)
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, entity.ThemeLight, s.Theme())
}
