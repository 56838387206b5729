// Package trade defines the data access contract for open and completed trades.
package trade

import (
	"context"

	"github.com/cardex/cardex/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for trade data access operations. Open
// listings and completed records live in separate tables; deletion of the
// open row inside the execution transaction is the commit signal that
// prevents double execution.
type Repository interface {
	// CreateOpen inserts a new open listing.
	CreateOpen(ctx context.Context, create *dto.OpenTradeCreate) error

	// GetOpen retrieves an open listing by its ID.
	GetOpen(ctx context.Context, id uuid.UUID) (*dto.OpenTradeRead, error)

	// ListOpen retrieves open listings matching the filter plus the
	// unpaginated total.
	ListOpen(ctx context.Context, filter dto.OpenTradeListFilter) ([]*dto.OpenTradeRead, int64, error)

	// DeleteOpen removes an open listing. It reports whether a row was
	// actually deleted, so callers can detect a concurrent execution.
	DeleteOpen(ctx context.Context, id uuid.UUID) (bool, error)

	// CreateCompleted inserts an executed trade record.
	CreateCompleted(ctx context.Context, create *dto.CompletedTradeCreate) error

	// GetCompleted retrieves an executed trade record by its ID.
	GetCompleted(ctx context.Context, id uuid.UUID) (*dto.CompletedTradeRead, error)

	// ListCompleted retrieves executed trade records matching the filter
	// plus the unpaginated total.
	ListCompleted(ctx context.Context, filter dto.CompletedTradeListFilter) ([]*dto.CompletedTradeRead, int64, error)
}
