// Package dto holds the data transfer objects exchanged between the service
// layer and the repositories.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserCreate represents the data needed to create a new user.
type UserCreate struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username" validate:"required,min=3,max=50"`
	Password string    `json:"password,omitempty" validate:"required,min=6"`
	Currency int       `json:"currency"`
}

// UserUpdate represents the data that can be updated for a user.
// Nil fields are left untouched.
type UserUpdate struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Currency *int    `json:"currency,omitempty"`
}

// UserRead represents a read-optimized view of a user.
type UserRead struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	Currency       int       `json:"currency"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
