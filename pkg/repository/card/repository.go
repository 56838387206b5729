// Package card defines the card data access contract.
package card

import (
	"context"

	"github.com/cardex/cardex/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for card data access operations.
type Repository interface {
	// Create inserts a new card record from a DTO.
	Create(ctx context.Context, create *dto.CardCreate) error

	// Get retrieves a card by its ID as a read-optimized DTO.
	Get(ctx context.Context, id uuid.UUID) (*dto.CardRead, error)

	// List retrieves cards matching the filter plus the unpaginated total.
	List(ctx context.Context, filter dto.CardListFilter) ([]*dto.CardRead, int64, error)

	// ListIDsByOwner retrieves the ids of all cards owned by a user.
	ListIDsByOwner(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// UpdateOwner reassigns a card to a new owner.
	UpdateOwner(ctx context.Context, id, newOwner uuid.UUID) error

	// UpdateValue sets a card's market value.
	UpdateValue(ctx context.Context, id uuid.UUID, value int) error

	// Delete deletes a card by its ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
