package storage

import (
	"context"
	"sync"

	"github.com/yourusername/storefront/internal/domain/entity"
)

// MemoryAdminRepository admin harakatlari jurnali (xotirada)
type MemoryAdminRepository struct {
	mu      sync.RWMutex
	actions []entity.AdminAction
	maxSize int
}

// NewMemoryAdminRepository in-memory admin repository yaratish. maxSize <= 0 cheklovsiz.
func NewMemoryAdminRepository(maxSize int) *MemoryAdminRepository {
	return &MemoryAdminRepository{
		actions: []entity.AdminAction{},
		maxSize: maxSize,
	}
}

// LogAction admin harakatini loglash
func (m *MemoryAdminRepository) LogAction(ctx context.Context, action entity.AdminAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actions = append(m.actions, action)

	// Maksimal hajmni nazorat qilish
	if m.maxSize > 0 && len(m.actions) > m.maxSize {
		m.actions = m.actions[len(m.actions)-m.maxSize:]
	}
	return nil
}

// ListActions oxirgi harakatlar (yangi -> eski)
func (m *MemoryAdminRepository) ListActions(ctx context.Context, limit int) ([]entity.AdminAction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := len(m.actions)
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]entity.AdminAction, 0, n)
	for i := len(m.actions) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, m.actions[i])
	}
	return out, nil
}
