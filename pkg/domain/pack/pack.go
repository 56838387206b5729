// Package pack defines the unopened card pack aggregate.
package pack

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrPackNotFound is returned when a pack cannot be found in the repository.
	ErrPackNotFound = errors.New("pack not found")
	// ErrNegativeValue is returned when a pack value update is negative.
	ErrNegativeValue = errors.New("value cannot be negative")
)

// Pack is an unopened pack tied to a collection. Opening it consumes the
// pack and mints a card from the collection's vehicles.
type Pack struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	CollectionID uuid.UUID `json:"collection_id"`
	Value        int       `json:"value"`
	CreatedAt    time.Time `json:"created_at"`
}

// New creates a Pack owned by the given user.
func New(userID, collectionID uuid.UUID, value int) (*Pack, error) {
	if value < 0 {
		return nil, ErrNegativeValue
	}
	return &Pack{
		ID:           uuid.New(),
		UserID:       userID,
		CollectionID: collectionID,
		Value:        value,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// UpdateValue sets a new value. Negative values are rejected.
func (p *Pack) UpdateValue(newValue int) error {
	if newValue < 0 {
		return ErrNegativeValue
	}
	p.Value = newValue
	return nil
}
