package repository

import (
	"context"

	"github.com/yourusername/storefront/internal/domain/entity"
)

// AIRepository AI bilan ishlash uchun interface
type AIRepository interface {
	// GenerateAnswer katalog matni va oldingi savollar asosida javob yaratish
	GenerateAnswer(ctx context.Context, question, catalog string, history []entity.Message) (string, error)
}
