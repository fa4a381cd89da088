package models

import (
	"time"

	"github.com/google/uuid"
)

// User deliberately has no unique index on email; only admins enforce email
// uniqueness.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"type:varchar(100);not null"`
	LastName  string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
}
