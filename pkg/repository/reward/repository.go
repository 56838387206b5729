// Package reward defines the reward data access contract.
package reward

import (
	"context"
	"time"

	"github.com/cardex/cardex/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for reward data access operations.
type Repository interface {
	// Create inserts a new reward record.
	Create(ctx context.Context, create *dto.RewardCreate) error

	// Get retrieves a reward by its ID.
	Get(ctx context.Context, id uuid.UUID) (*dto.RewardRead, error)

	// ListByUser retrieves a user's rewards. claimed filters by claim state
	// when non-nil.
	ListByUser(ctx context.Context, userID uuid.UUID, claimed *bool) ([]*dto.RewardRead, error)

	// MarkClaimed stamps the reward as claimed.
	MarkClaimed(ctx context.Context, id uuid.UUID, at time.Time) error
}
