package entities

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user profile created together with a bound API key.
type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// BindUserInput represents input for creating a user bound to an existing key
type BindUserInput struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	ApiKey    string `json:"api_key" binding:"required"`
}
