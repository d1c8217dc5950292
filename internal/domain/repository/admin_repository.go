package repository

import (
	"context"

	"github.com/yourusername/storefront/internal/domain/entity"
)

// AdminRepository admin harakatlari jurnali
type AdminRepository interface {
	// LogAction admin harakatini loglash
	LogAction(ctx context.Context, action entity.AdminAction) error

	// ListActions oxirgi harakatlar (yangi -> eski)
	ListActions(ctx context.Context, limit int) ([]entity.AdminAction, error)
}
