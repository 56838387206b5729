package pack

import (
	"time"

	"github.com/google/uuid"
)

// Pack represents an unopened pack row. The row is deleted when the pack is
// opened.
type Pack struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null"`
	CollectionID uuid.UUID `gorm:"type:uuid;index;not null"`
	Value        int       `gorm:"not null;check:value >= 0"`
	CreatedAt    time.Time
}

// TableName specifies the table name for the Pack model.
func (Pack) TableName() string {
	return "packs"
}
