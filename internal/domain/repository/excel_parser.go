package repository

import (
	"context"

	"github.com/yourusername/storefront/internal/domain/entity"
)

// ExcelParser Excel fayllarni parse qilish uchun interface
type ExcelParser interface {
	// ParseDrafts Excel fayldan mahsulot draftlarini o'qish
	ParseDrafts(ctx context.Context, filePath string) ([]entity.ProductDraft, error)

	// ParseDraftsFromBytes byte array dan parse qilish
	ParseDraftsFromBytes(ctx context.Context, data []byte, filename string) ([]entity.ProductDraft, error)
}
