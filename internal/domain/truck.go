// Package domain contains the core data types for the Fleet Maintenance application.
// This package has zero external dependencies beyond uuid and is imported by every
// other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Truck represents a single vehicle in the fleet.
// A truck is the top-level aggregate; maintenance records belong to a truck
// and are removed with it (ON DELETE CASCADE at the database level).
type Truck struct {
	ID          uuid.UUID `json:"id"`
	TruckNumber string    `json:"truck_number"` // human-readable fleet label, e.g. "T-104"
	Make        string    `json:"make,omitempty"`
	Model       string    `json:"model,omitempty"`
	Year        int       `json:"year,omitempty"`
	VIN         string    `json:"vin,omitempty"`
	// CurrentMileage is the latest known odometer reading. It is raised
	// automatically when a maintenance record is logged with a higher
	// mileage-at-service, and never lowered by that path.
	CurrentMileage int       `json:"current_mileage"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
