package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record in the database.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Username  string    `gorm:"uniqueIndex;not null;size:50"`
	Password  string    `gorm:"not null"`
	Currency  int       `gorm:"not null;default:0;check:currency >= 0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
