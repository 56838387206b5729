package dto

import (
	"time"

	"github.com/google/uuid"
)

// PackCreate represents the data needed to mint a pack.
type PackCreate struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	CollectionID uuid.UUID `json:"collection_id"`
	Value        int       `json:"value"`
}

// PackRead represents a read-optimized view of a pack.
type PackRead struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	CollectionID uuid.UUID `json:"collection_id"`
	Value        int       `json:"value"`
	CreatedAt    time.Time `json:"created_at"`
}
