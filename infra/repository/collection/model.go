package collection

import "github.com/google/uuid"

// Collection represents a collection row.
type Collection struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"not null;size:255"`
	Image     string
	PackPrice int `gorm:"not null;default:0"`
}

// TableName specifies the table name for the Collection model.
func (Collection) TableName() string {
	return "collections"
}

// Vehicle represents a vehicle row.
type Vehicle struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	CollectionID uuid.UUID `gorm:"type:uuid;index;not null"`
	Year         string    `gorm:"size:8"`
	Make         string    `gorm:"size:64"`
	Model        string    `gorm:"size:64"`
	Stat1        int
	Stat2        int
	Stat3        int
	Value        int `gorm:"not null;default:0"`
	Image        string
}

// TableName specifies the table name for the Vehicle model.
func (Vehicle) TableName() string {
	return "vehicles"
}
