package domain

import "github.com/google/uuid"

// TimeRange restricts analytics queries to a window relative to "now".
type TimeRange string

const (
	// RangeAll includes every record regardless of date.
	RangeAll TimeRange = "all"
	// RangeMonth includes records from the first of the current month.
	RangeMonth TimeRange = "month"
	// RangeQuarter includes records from the first of the month three months ago.
	RangeQuarter TimeRange = "quarter"
	// RangeYear includes records from January 1st of the current year.
	RangeYear TimeRange = "year"
)

// Valid reports whether r is a recognized time range.
func (r TimeRange) Valid() bool {
	switch r {
	case RangeAll, RangeMonth, RangeQuarter, RangeYear:
		return true
	}
	return false
}

// CostSummary aggregates maintenance spending over a set of records.
type CostSummary struct {
	TotalCost float64 `json:"total_cost"`
	// AvgCost is TotalCost / TotalServices, or 0 when there are no records.
	AvgCost        float64 `json:"avg_cost"`
	TotalServices  int     `json:"total_services"`
	TrucksServiced int     `json:"trucks_serviced"` // distinct trucks with at least one record
}

// CategoryCost is total spending for one category.
type CategoryCost struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Cost     float64  `json:"cost"`
}

// TruckCost is total spending for one truck.
type TruckCost struct {
	TruckID     uuid.UUID `json:"truck_id"`
	TruckNumber string    `json:"truck_number"`
	Cost        float64   `json:"cost"`
}

// MonthlyCost is total spending for one calendar month.
type MonthlyCost struct {
	Month string  `json:"month"` // "2006-01" format
	Cost  float64 `json:"cost"`
}
