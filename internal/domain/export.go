package domain

import "time"

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per maintenance record, with the
// owning truck's fields repeated on every row. Records whose truck has been
// deleted cannot exist (cascade), so every row has truck fields populated.
type ExportRow struct {
	// Record fields.
	RecordID    string    `json:"record_id"`
	Date        time.Time `json:"date"`
	Mileage     int       `json:"mileage"`
	Category    Category  `json:"category"`
	Description string    `json:"description,omitempty"`
	Cost        float64   `json:"cost"`
	PartsCost   float64   `json:"parts_cost"`
	LaborCost   float64   `json:"labor_cost"`
	Provider    string    `json:"service_provider,omitempty"`
	Notes       string    `json:"notes,omitempty"`

	// Truck fields — repeated for every record of the truck.
	TruckID     string `json:"truck_id"`
	TruckNumber string `json:"truck_number"`
	Make        string `json:"make,omitempty"`
	Model       string `json:"model,omitempty"`
}
