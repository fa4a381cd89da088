package repositories

import (
	"context"

	"keymint.backend/internal/domain/entities"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *entities.Admin) error
	FindByEmail(ctx context.Context, email string) (*entities.Admin, error)
}
