// Package collection defines the catalog data access contract.
package collection

import (
	"context"

	"github.com/cardex/cardex/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for collection and vehicle data access.
// The catalog is read-mostly; rows are seeded out of band.
type Repository interface {
	// Get retrieves a collection with its vehicles.
	Get(ctx context.Context, id uuid.UUID) (*dto.CollectionRead, error)

	// List retrieves all collections without their vehicles.
	List(ctx context.Context) ([]*dto.CollectionRead, error)

	// GetVehicle retrieves a vehicle by its ID.
	GetVehicle(ctx context.Context, id uuid.UUID) (*dto.VehicleRead, error)

	// ListVehicles retrieves the vehicles of a collection.
	ListVehicles(ctx context.Context, collectionID uuid.UUID) ([]*dto.VehicleRead, error)
}
