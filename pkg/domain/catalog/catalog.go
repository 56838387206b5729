// Package catalog defines the static marketplace content: vehicles and the
// collections that group them.
package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrCollectionNotFound is returned when a collection cannot be found.
	ErrCollectionNotFound = errors.New("collection not found")
	// ErrVehicleNotFound is returned when a vehicle cannot be found.
	ErrVehicleNotFound = errors.New("vehicle not found")
	// ErrNegativeValue is returned when a vehicle value update is negative.
	ErrNegativeValue = errors.New("value cannot be negative")
)

// Vehicle is the subject printed on a card.
type Vehicle struct {
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

// Name returns the display name, e.g. "1999 Nissan Skyline".
func (v *Vehicle) Name() string {
	return fmt.Sprintf("%s %s %s", v.Year, v.Make, v.Model)
}

// Rating is the mean of the three performance stats.
func (v *Vehicle) Rating() int {
	return (v.Stat1 + v.Stat2 + v.Stat3) / 3
}

// UpdateValue sets a new market value. Negative values are rejected.
func (v *Vehicle) UpdateValue(newValue int) error {
	if newValue < 0 {
		return ErrNegativeValue
	}
	v.Value = newValue
	return nil
}

// Collection groups vehicles and prices the packs minted from it.
type Collection struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	PackPrice int       `json:"pack_price"`
	Vehicles  []Vehicle `json:"vehicles"`
}

// AddVehicle appends a vehicle to the collection.
func (c *Collection) AddVehicle(v Vehicle) {
	c.Vehicles = append(c.Vehicles, v)
}

// RemoveVehicle drops a vehicle from the collection.
func (c *Collection) RemoveVehicle(vehicleID uuid.UUID) {
	for i, v := range c.Vehicles {
		if v.ID == vehicleID {
			c.Vehicles = append(c.Vehicles[:i], c.Vehicles[i+1:]...)
			return
		}
	}
}

// HasVehicle reports whether the collection contains the vehicle.
func (c *Collection) HasVehicle(vehicleID uuid.UUID) bool {
	for _, v := range c.Vehicles {
		if v.ID == vehicleID {
			return true
		}
	}
	return false
}
