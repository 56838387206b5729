package reward

import (
	"time"

	"github.com/google/uuid"
)

// Reward represents a reward row. ClaimedAt stays NULL until the reward is
// claimed.
type Reward struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	Type      string     `gorm:"not null;size:32"`
	ItemID    *uuid.UUID `gorm:"type:uuid"`
	Amount    int        `gorm:"not null;default:0"`
	CreatedAt time.Time
	ClaimedAt *time.Time
}

// TableName specifies the table name for the Reward model.
func (Reward) TableName() string {
	return "rewards"
}
