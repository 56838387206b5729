// Package user defines the user data access contract.
package user

import (
	"context"

	"github.com/cardex/cardex/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// Create inserts a new user record from a DTO.
	Create(ctx context.Context, create *dto.UserCreate) error

	// Update updates an existing user by its ID using a DTO.
	Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error

	// Get retrieves a user by its ID as a read-optimized DTO.
	Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)

	// GetByUsername retrieves a user by username as a read-optimized DTO.
	GetByUsername(ctx context.Context, username string) (*dto.UserRead, error)

	// ExistsByUsername checks if a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Delete deletes a user by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
