package dto

import "github.com/google/uuid"

// VehicleRead represents a read-optimized view of a vehicle.
type VehicleRead struct {
	ID    uuid.UUID `json:"id"`
	Year  string    `json:"year"`
	Make  string    `json:"make"`
	Model string    `json:"model"`
	Stat1 int       `json:"stat1"`
	Stat2 int       `json:"stat2"`
	Stat3 int       `json:"stat3"`
	Value int       `json:"value"`
	Image string    `json:"image"`
}

// CollectionRead represents a read-optimized view of a collection.
type CollectionRead struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Image     string        `json:"image"`
	PackPrice int           `json:"pack_price"`
	Vehicles  []VehicleRead `json:"vehicles,omitempty"`
}
