package dto

import (
	"time"

	"github.com/google/uuid"
)

// RewardCreate represents the data needed to grant a reward.
type RewardCreate struct {
	ID     uuid.UUID  `json:"id"`
	UserID uuid.UUID  `json:"user_id"`
	Type   string     `json:"type"`
	ItemID *uuid.UUID `json:"item_id,omitempty"`
	Amount int        `json:"amount"`
}

// RewardRead represents a read-optimized view of a reward.
type RewardRead struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Type      string     `json:"type"`
	ItemID    *uuid.UUID `json:"item_id,omitempty"`
	Amount    int        `json:"amount"`
	CreatedAt time.Time  `json:"created_at"`
	ClaimedAt *time.Time `json:"claimed_at,omitempty"`
}
