package storage

import (
	"context"
	"sync"

	"github.com/yourusername/storefront/internal/domain/entity"
)

// MemoryChatRepository yordamchi suhbat tarixi (xotirada)
type MemoryChatRepository struct {
	mu       sync.RWMutex
	messages map[int64][]entity.Message
	maxSize  int
}

// NewMemoryChatRepository in-memory chat repository yaratish
func NewMemoryChatRepository(maxContextSize int) *MemoryChatRepository {
	return &MemoryChatRepository{
		messages: make(map[int64][]entity.Message),
		maxSize:  maxContextSize,
	}
}

// SaveMessage xabarni saqlash
func (m *MemoryChatRepository) SaveMessage(ctx context.Context, message entity.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	history := append(m.messages[message.ChatID], message)

	// Maksimal hajmni nazorat qilish
	if m.maxSize > 0 && len(history) > m.maxSize {
		history = history[len(history)-m.maxSize:]
	}
	m.messages[message.ChatID] = history
	return nil
}

// GetHistory chat tarixini olish
func (m *MemoryChatRepository) GetHistory(ctx context.Context, chatID int64, limit int) ([]entity.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := m.messages[chatID]
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}

	out := make([]entity.Message, len(history))
	copy(out, history)
	return out, nil
}

// ClearHistory chat tarixini tozalash
func (m *MemoryChatRepository) ClearHistory(ctx context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.messages, chatID)
	return nil
}
