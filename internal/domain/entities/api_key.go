package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// KeyStatus represents the lifecycle state of an API key.
//
// active is the only non-terminal state: a key moves to out_of_date when
// validation observes its expiry has passed, or to revoked by an explicit
// administrative action. Neither terminal state ever transitions back.
type KeyStatus string

const (
	KeyStatusActive    KeyStatus = "active"
	KeyStatusOutOfDate KeyStatus = "out_of_date"
	KeyStatusRevoked   KeyStatus = "revoked"
)

// IsTerminal reports whether the status can never change again.
func (s KeyStatus) IsTerminal() bool {
	return s == KeyStatusOutOfDate || s == KeyStatusRevoked
}

// ApiKey represents an issued API key. Keys created through the plain create
// flow have no owner and no expiry; keys bound to a user expire 30 days
// after creation.
type ApiKey struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.NullUUID `json:"userId,omitempty"`
	Key       string        `json:"apiKey"`
	Status    KeyStatus     `json:"status"`
	ExpiresAt null.Time     `json:"expiresAt,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

// ValidateKeyInput represents input for validating an API key
type ValidateKeyInput struct {
	ApiKey string `json:"api_key" binding:"required"`
}

// VerdictReason explains a validation verdict.
type VerdictReason string

const (
	VerdictActive  VerdictReason = "active"
	VerdictExpired VerdictReason = "expired"
	VerdictRevoked VerdictReason = "revoked"
)

// ValidationVerdict is the outcome of validating a key value.
type ValidationVerdict struct {
	Valid  bool          `json:"valid"`
	Reason VerdictReason `json:"reason"`
}

// UserKeyRow is one row of the admin listing: user fields joined with key
// fields. Either side may be absent (unbound keys, users without keys).
type UserKeyRow struct {
	UserID        uuid.NullUUID `json:"userId"`
	FirstName     null.String   `json:"firstName"`
	LastName      null.String   `json:"lastName"`
	Email         null.String   `json:"email"`
	UserCreatedAt null.Time     `json:"userCreatedAt"`
	KeyID         uuid.NullUUID `json:"keyId"`
	Key           null.String   `json:"apiKey"`
	Status        null.String   `json:"status"`
	ExpiresAt     null.Time     `json:"expiresAt"`
	KeyCreatedAt  null.Time     `json:"keyCreatedAt"`
}
