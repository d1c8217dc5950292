package repository

import (
	"context"

	"github.com/yourusername/storefront/internal/domain/entity"
)

// ChatRepository yordamchi bilan suhbat tarixi
type ChatRepository interface {
	// SaveMessage xabarni saqlash
	SaveMessage(ctx context.Context, message entity.Message) error

	// GetHistory chat tarixini olish (eski -> yangi)
	GetHistory(ctx context.Context, chatID int64, limit int) ([]entity.Message, error)

	// ClearHistory chat tarixini tozalash
	ClearHistory(ctx context.Context, chatID int64) error
}
