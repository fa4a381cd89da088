package models

import (
	"time"

	"github.com/google/uuid"
)

type ApiKey struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	Key       string     `gorm:"column:api_key;type:varchar(64);uniqueIndex;not null"`
	Status    string     `gorm:"type:varchar(20);not null;default:'active'"`
	ExpiresAt *time.Time
	CreatedAt time.Time
}

func (ApiKey) TableName() string {
	return "api_keys"
}
