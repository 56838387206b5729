package trade

import (
	"time"

	"github.com/google/uuid"
)

// OpenTrade represents an open listing row. The row is deleted inside the
// execution transaction; its absence is what makes a second concurrent
// execution fail.
type OpenTrade struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	Type       string     `gorm:"not null;size:16"`
	UserID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	CardID     uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	Price      int        `gorm:"not null;default:0"`
	WantCardID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
}

// TableName specifies the table name for the OpenTrade model.
func (OpenTrade) TableName() string {
	return "open_trades"
}

// CompletedTrade represents an executed trade record. Rows are insert-only.
type CompletedTrade struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key"`
	Type         string     `gorm:"not null;size:16"`
	SellerUserID uuid.UUID  `gorm:"type:uuid;index;not null"`
	SellerCardID uuid.UUID  `gorm:"type:uuid;not null"`
	BuyerUserID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	BuyerCardID  *uuid.UUID `gorm:"type:uuid"`
	Price        int        `gorm:"not null;default:0"`
	ExecutedDate time.Time  `gorm:"not null"`
}

// TableName specifies the table name for the CompletedTrade model.
func (CompletedTrade) TableName() string {
	return "completed_trades"
}
