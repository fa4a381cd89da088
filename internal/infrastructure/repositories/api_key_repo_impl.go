package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"keymint.backend/internal/domain/entities"
	domainerrors "keymint.backend/internal/domain/errors"
	"keymint.backend/internal/infrastructure/models"
)

// ApiKeyRepository implements API key data operations
type ApiKeyRepository struct {
	db *gorm.DB
}

// NewApiKeyRepository creates a new API key repository
func NewApiKeyRepository(db *gorm.DB) *ApiKeyRepository {
	return &ApiKeyRepository{db: db}
}

// Create inserts a new API key. The unique index on the key value surfaces
// collisions as ErrAlreadyExists.
func (r *ApiKeyRepository) Create(ctx context.Context, apiKey *entities.ApiKey) error {
	if apiKey.ID == uuid.Nil {
		apiKey.ID = uuid.New()
	}
	if apiKey.CreatedAt.IsZero() {
		apiKey.CreatedAt = time.Now()
	}

	m := &models.ApiKey{
		ID:        apiKey.ID,
		Key:       apiKey.Key,
		Status:    string(apiKey.Status),
		ExpiresAt: apiKey.ExpiresAt.Ptr(),
		CreatedAt: apiKey.CreatedAt,
	}
	if apiKey.UserID.Valid {
		id := apiKey.UserID.UUID
		m.UserID = &id
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByValue gets an API key by its value
func (r *ApiKeyRepository) FindByValue(ctx context.Context, value string) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("api_key = ?", value).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toApiKeyEntity(&m), nil
}

// UpdateStatus writes the status unconditionally; no read-modify-write, so
// two concurrent expiry transitions both land on the same terminal value.
func (r *ApiKeyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.KeyStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.ApiKey{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists all API keys, newest first
func (r *ApiKeyRepository) List(ctx context.Context) ([]*entities.ApiKey, error) {
	var keyModels []models.ApiKey
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&keyModels).Error; err != nil {
		return nil, err
	}

	keys := make([]*entities.ApiKey, 0, len(keyModels))
	for i := range keyModels {
		keys = append(keys, toApiKeyEntity(&keyModels[i]))
	}
	return keys, nil
}

type userKeyRowModel struct {
	UserID        uuid.NullUUID `gorm:"column:user_id"`
	FirstName     null.String   `gorm:"column:first_name"`
	LastName      null.String   `gorm:"column:last_name"`
	Email         null.String   `gorm:"column:email"`
	UserCreatedAt null.Time     `gorm:"column:user_created_at"`
	KeyID         uuid.NullUUID `gorm:"column:key_id"`
	Key           null.String   `gorm:"column:api_key"`
	Status        null.String   `gorm:"column:status"`
	ExpiresAt     null.Time     `gorm:"column:expires_at"`
	KeyCreatedAt  null.Time     `gorm:"column:key_created_at"`
}

// ListJoinedWithUsers returns users joined with their keys, most recently
// created user first. The full outer join is emulated with a UNION so the
// query runs identically on postgres and the sqlite test driver: unbound
// keys and keyless users both appear with nulls on the missing side.
func (r *ApiKeyRepository) ListJoinedWithUsers(ctx context.Context) ([]*entities.UserKeyRow, error) {
	const query = `
SELECT u.id AS user_id, u.first_name, u.last_name, u.email, u.created_at AS user_created_at,
       k.id AS key_id, k.api_key, k.status, k.expires_at, k.created_at AS key_created_at
FROM users u
LEFT JOIN api_keys k ON k.user_id = u.id
UNION ALL
SELECT NULL, NULL, NULL, NULL, NULL,
       k.id, k.api_key, k.status, k.expires_at, k.created_at
FROM api_keys k
WHERE k.user_id IS NULL
ORDER BY user_created_at DESC NULLS LAST`

	var rowModels []userKeyRowModel
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rowModels).Error; err != nil {
		return nil, err
	}

	rows := make([]*entities.UserKeyRow, 0, len(rowModels))
	for i := range rowModels {
		m := &rowModels[i]
		rows = append(rows, &entities.UserKeyRow{
			UserID:        m.UserID,
			FirstName:     m.FirstName,
			LastName:      m.LastName,
			Email:         m.Email,
			UserCreatedAt: m.UserCreatedAt,
			KeyID:         m.KeyID,
			Key:           m.Key,
			Status:        m.Status,
			ExpiresAt:     m.ExpiresAt,
			KeyCreatedAt:  m.KeyCreatedAt,
		})
	}
	return rows, nil
}

func toApiKeyEntity(m *models.ApiKey) *entities.ApiKey {
	return &entities.ApiKey{
		ID:        m.ID,
		UserID:    nullUUIDFromPtr(m.UserID),
		Key:       m.Key,
		Status:    entities.KeyStatus(m.Status),
		ExpiresAt: null.TimeFromPtr(m.ExpiresAt),
		CreatedAt: m.CreatedAt,
	}
}

func nullUUIDFromPtr(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}
