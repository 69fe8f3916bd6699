package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaintenanceRecord represents a single logged service event against a truck.
// TruckID is a reference, not ownership — the record does not own the truck,
// but deleting the truck cascades to its records.
//
// Date and MileageAtService are a snapshot of the moment the service happened.
// They are never recomputed from other records or from the truck's current
// mileage.
type MaintenanceRecord struct {
	ID               uuid.UUID `json:"id"`
	TruckID          uuid.UUID `json:"truck_id"`
	Date             time.Time `json:"date"`
	MileageAtService int       `json:"mileage_at_service"`
	Category         Category  `json:"category"`
	Description      string    `json:"description,omitempty"`
	// Cost is the total amount paid. It is entered independently and is not
	// required to equal PartsCost + LaborCost.
	Cost            float64   `json:"cost"`
	PartsCost       float64   `json:"parts_cost"`
	LaborCost       float64   `json:"labor_cost"`
	ServiceProvider string    `json:"service_provider,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Photos          []string  `json:"photos,omitempty"` // attachment URLs, stored as-is
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
