package repositories

import (
	"context"

	"github.com/google/uuid"
	"keymint.backend/internal/domain/entities"
)

type ApiKeyRepository interface {
	Create(ctx context.Context, apiKey *entities.ApiKey) error
	FindByValue(ctx context.Context, value string) (*entities.ApiKey, error)
	// UpdateStatus writes the status unconditionally; applying the same
	// terminal status twice is a no-op.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.KeyStatus) error
	List(ctx context.Context) ([]*entities.ApiKey, error)
	// ListJoinedWithUsers returns the outer join of users and keys ordered by
	// user creation time descending; rows missing one side carry nulls.
	ListJoinedWithUsers(ctx context.Context) ([]*entities.UserKeyRow, error)
}
