// Package card defines the Card aggregate and its ordered grade enumeration.
package card

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrCardNotFound is returned when a card cannot be found in the repository.
	ErrCardNotFound = errors.New("card not found")
	// ErrNegativeValue is returned when a card value update is negative.
	ErrNegativeValue = errors.New("value cannot be negative")
	// ErrGradeNotHigher is returned when a grade change is not strictly upward.
	ErrGradeNotHigher = errors.New("cannot downgrade or keep the same grade")
)

// Grade is the ordered rarity tier of a card, lowest to highest. The integer
// backing is load-bearing: upgrade comparisons rely on the ranking, so the
// order here must never be rearranged.
type Grade int

const (
	// GradeFactory is the baseline rarity.
	GradeFactory Grade = iota
	// GradeLimitedRun is the mid rarity tier.
	GradeLimitedRun
	// GradeNismo is the highest rarity tier.
	GradeNismo
)

// String returns the wire representation of the grade.
func (g Grade) String() string {
	switch g {
	case GradeFactory:
		return "FACTORY"
	case GradeLimitedRun:
		return "LIMITED_RUN"
	case GradeNismo:
		return "NISMO"
	default:
		return fmt.Sprintf("Grade(%d)", int(g))
	}
}

// ParseGrade converts a wire string into a Grade.
func ParseGrade(s string) (Grade, error) {
	switch s {
	case "FACTORY":
		return GradeFactory, nil
	case "LIMITED_RUN":
		return GradeLimitedRun, nil
	case "NISMO":
		return GradeNismo, nil
	default:
		return 0, fmt.Errorf("unknown grade %q", s)
	}
}

// Card is a collectible tied to a vehicle within a collection. UserID always
// reflects the current owner; only the trade executor reassigns it.
type Card struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	VehicleID    uuid.UUID `json:"vehicle_id"`
	CollectionID uuid.UUID `json:"collection_id"`
	Grade        Grade     `json:"grade"`
	Value        int       `json:"value"`
	CreatedAt    time.Time `json:"created_at"`
}

// New creates a Card owned by the given user.
func New(userID, vehicleID, collectionID uuid.UUID, grade Grade, value int) (*Card, error) {
	if value < 0 {
		return nil, ErrNegativeValue
	}
	return &Card{
		ID:           uuid.New(),
		UserID:       userID,
		VehicleID:    vehicleID,
		CollectionID: collectionID,
		Grade:        grade,
		Value:        value,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// UpdateValue sets a new market value. Negative values are rejected.
func (c *Card) UpdateValue(newValue int) error {
	if newValue < 0 {
		return ErrNegativeValue
	}
	c.Value = newValue
	return nil
}

// UpgradeGrade moves the card to a strictly higher rarity tier.
func (c *Card) UpgradeGrade(newGrade Grade) error {
	if newGrade <= c.Grade {
		return ErrGradeNotHigher
	}
	c.Grade = newGrade
	return nil
}

// Transfer reassigns ownership to a new user.
func (c *Card) Transfer(newOwner uuid.UUID) {
	c.UserID = newOwner
}
