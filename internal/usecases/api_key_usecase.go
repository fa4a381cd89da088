package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"keymint.backend/internal/domain/entities"
	domainerrors "keymint.backend/internal/domain/errors"
	"keymint.backend/internal/domain/repositories"
	"keymint.backend/pkg/keygen"
	"keymint.backend/pkg/logger"
)

// BoundKeyLifetime is how long a key bound to a user stays valid.
const BoundKeyLifetime = 30 * 24 * time.Hour

var (
	generateKey = keygen.Generate
	timeNow     = time.Now
)

// VerdictCache remembers terminal key statuses so repeated validation of a
// dead key can skip the store. Implementations must only ever be fed
// terminal statuses.
type VerdictCache interface {
	Get(ctx context.Context, keyValue string) (string, error)
	Put(ctx context.Context, keyValue, status string) error
}

// ApiKeyUsecase orchestrates key generation, user binding and validation.
type ApiKeyUsecase struct {
	apiKeyRepo repositories.ApiKeyRepository
	userRepo   repositories.UserRepository
	uow        repositories.UnitOfWork
	cache      VerdictCache
}

// NewApiKeyUsecase creates a new API key usecase. cache may be nil to
// disable verdict caching.
func NewApiKeyUsecase(
	apiKeyRepo repositories.ApiKeyRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	cache VerdictCache,
) *ApiKeyUsecase {
	return &ApiKeyUsecase{
		apiKeyRepo: apiKeyRepo,
		userRepo:   userRepo,
		uow:        uow,
		cache:      cache,
	}
}

// CreateKey generates and stores an unbound, non-expiring key and returns
// its value. A generator collision surfaces as ErrAlreadyExists from the
// store's unique index; the caller retries with a fresh call.
func (u *ApiKeyUsecase) CreateKey(ctx context.Context) (string, error) {
	value, err := generateKey()
	if err != nil {
		return "", err
	}

	key := &entities.ApiKey{
		Key:    value,
		Status: entities.KeyStatusActive,
	}
	if err := u.apiKeyRepo.Create(ctx, key); err != nil {
		return "", err
	}
	return value, nil
}

// BindUser creates a user profile and an API key bound to it in a single
// transaction. The key value comes from the caller; the stored key expires
// 30 days after creation. Either both rows commit or neither does.
func (u *ApiKeyUsecase) BindUser(ctx context.Context, input *entities.BindUserInput) (uuid.UUID, error) {
	if input.FirstName == "" || input.LastName == "" || input.Email == "" || input.ApiKey == "" {
		return uuid.Nil, domainerrors.BadRequest("first_name, last_name, email and api_key are required")
	}

	user := &entities.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}

		now := timeNow()
		key := &entities.ApiKey{
			UserID:    uuid.NullUUID{UUID: user.ID, Valid: true},
			Key:       input.ApiKey,
			Status:    entities.KeyStatusActive,
			ExpiresAt: null.TimeFrom(now.Add(BoundKeyLifetime)),
			CreatedAt: now,
		}
		return u.apiKeyRepo.Create(txCtx, key)
	})
	if err != nil {
		return uuid.Nil, err
	}

	return user.ID, nil
}

// Validate checks a key value and applies the time-based status transition.
//
// The lookup and the conditional status write are deliberately not wrapped
// in a transaction: two requests racing on the expiry boundary both write
// the same terminal status, so the second write is a harmless no-op.
func (u *ApiKeyUsecase) Validate(ctx context.Context, value string) (*entities.ValidationVerdict, error) {
	if u.cache != nil {
		if status, err := u.cache.Get(ctx, value); err == nil {
			if s := entities.KeyStatus(status); s.IsTerminal() {
				return &entities.ValidationVerdict{Valid: false, Reason: verdictReason(s)}, nil
			}
		}
	}

	key, err := u.apiKeyRepo.FindByValue(ctx, value)
	if err != nil {
		return nil, err
	}

	if key.Status == entities.KeyStatusRevoked {
		u.cacheTerminal(ctx, value, key.Status)
		return &entities.ValidationVerdict{Valid: false, Reason: entities.VerdictRevoked}, nil
	}

	if key.Status == entities.KeyStatusOutOfDate {
		u.cacheTerminal(ctx, value, key.Status)
		return &entities.ValidationVerdict{Valid: false, Reason: entities.VerdictExpired}, nil
	}

	if key.ExpiresAt.Valid && key.ExpiresAt.Time.Before(timeNow()) {
		if err := u.apiKeyRepo.UpdateStatus(ctx, key.ID, entities.KeyStatusOutOfDate); err != nil {
			return nil, err
		}
		u.cacheTerminal(ctx, value, entities.KeyStatusOutOfDate)
		return &entities.ValidationVerdict{Valid: false, Reason: entities.VerdictExpired}, nil
	}

	return &entities.ValidationVerdict{Valid: true, Reason: entities.VerdictActive}, nil
}

// ListAll returns the joined user/key inventory for the admin listing.
func (u *ApiKeyUsecase) ListAll(ctx context.Context) ([]*entities.UserKeyRow, error) {
	return u.apiKeyRepo.ListJoinedWithUsers(ctx)
}

// ListKeys returns all raw key records, newest first.
func (u *ApiKeyUsecase) ListKeys(ctx context.Context) ([]*entities.ApiKey, error) {
	return u.apiKeyRepo.List(ctx)
}

// Revoke moves a key to the revoked terminal state.
func (u *ApiKeyUsecase) Revoke(ctx context.Context, id uuid.UUID) error {
	return u.apiKeyRepo.UpdateStatus(ctx, id, entities.KeyStatusRevoked)
}

func (u *ApiKeyUsecase) cacheTerminal(ctx context.Context, value string, status entities.KeyStatus) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Put(ctx, value, string(status)); err != nil {
		logger.Warn(ctx, "failed to cache key verdict", zap.Error(err))
	}
}

func verdictReason(status entities.KeyStatus) entities.VerdictReason {
	if status == entities.KeyStatusRevoked {
		return entities.VerdictRevoked
	}
	return entities.VerdictExpired
}
