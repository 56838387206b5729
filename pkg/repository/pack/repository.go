// Package pack defines the pack data access contract.
package pack

import (
	"context"

	"github.com/cardex/cardex/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for pack data access operations.
type Repository interface {
	// Create inserts a new pack record.
	Create(ctx context.Context, create *dto.PackCreate) error

	// Get retrieves a pack by its ID.
	Get(ctx context.Context, id uuid.UUID) (*dto.PackRead, error)

	// ListByOwner retrieves all packs owned by a user, optionally filtered
	// by collection.
	ListByOwner(ctx context.Context, userID uuid.UUID, collectionID *uuid.UUID) ([]*dto.PackRead, error)

	// Delete removes a pack (consumed on opening).
	Delete(ctx context.Context, id uuid.UUID) error
}
