package dto

import (
	"time"

	"github.com/google/uuid"
)

// CardCreate represents the data needed to mint a new card.
type CardCreate struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	VehicleID    uuid.UUID `json:"vehicle_id"`
	CollectionID uuid.UUID `json:"collection_id"`
	Grade        string    `json:"grade"`
	Value        int       `json:"value"`
}

// CardRead represents a read-optimized view of a card. Name is the joined
// vehicle display name.
type CardRead struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	VehicleID    uuid.UUID `json:"vehicle_id"`
	CollectionID uuid.UUID `json:"collection_id"`
	Name         string    `json:"name"`
	Grade        string    `json:"grade"`
	Value        int       `json:"value"`
	CreatedAt    time.Time `json:"created_at"`
}

// CardListFilter narrows and orders card listings.
type CardListFilter struct {
	UserID       *uuid.UUID
	CollectionID *uuid.UUID
	VehicleID    *uuid.UUID
	Grade        *string
	MinValue     *int
	MaxValue     *int
	SortBy       string
	Limit        int
	Offset       int
}
