package card

import (
	"time"

	"github.com/google/uuid"
)

// Card represents a card record in the database. Grade is stored as its
// integer rank so grade sorting follows rarity order, not string order.
type Card struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null"`
	VehicleID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CollectionID uuid.UUID `gorm:"type:uuid;index;not null"`
	Grade        int       `gorm:"not null"`
	Value        int       `gorm:"not null;check:value >= 0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the Card model.
func (Card) TableName() string {
	return "cards"
}
