package domain

import (
	"time"

	"github.com/google/uuid"
)

// IntervalRule is the recommended maximum gap between services of one
// category. A nil bound means that dimension never triggers a status change
// (e.g. inspections are purely time-based).
type IntervalRule struct {
	Miles *int `json:"miles"`
	Days  *int `json:"days"`
}

// ServiceInterval pairs a category with its interval rule.
type ServiceInterval struct {
	Category Category
	Rule     IntervalRule
}

// ServiceIntervals is the fixed service-interval policy, in evaluation order.
// Only categories listed here participate in due-service evaluation; the rest
// (electrical, engine, ..., other) have no sensible fixed interval and are
// skipped. The values are business policy — do not change them casually.
//
// An explicit ordered slice (rather than a map) pins the per-truck entry
// order of the evaluator's output contractually.
var ServiceIntervals = []ServiceInterval{
	{CategoryOilChange, IntervalRule{Miles: intPtr(5000), Days: intPtr(90)}},
	{CategoryTires, IntervalRule{Miles: intPtr(50000), Days: intPtr(365)}},
	{CategoryBrakes, IntervalRule{Miles: intPtr(30000), Days: intPtr(365)}},
	{CategoryFilters, IntervalRule{Miles: intPtr(15000), Days: intPtr(180)}},
	{CategoryFluids, IntervalRule{Miles: intPtr(30000), Days: intPtr(365)}},
	{CategoryInspection, IntervalRule{Days: intPtr(365)}},
}

func intPtr(v int) *int { return &v }

// DueStatus is the service status of one (truck, category) pair.
type DueStatus string

const (
	// DueStatusOverdue means a mileage or day bound has been met or exceeded.
	DueStatusOverdue DueStatus = "overdue"
	// DueStatusSoon means the truck is within 10% of a mileage or day bound.
	DueStatusSoon DueStatus = "soon"
	// DueStatusUnknown means the truck has no service history for the category.
	DueStatusUnknown DueStatus = "unknown"
	// DueStatusOK means the truck is comfortably within bounds. OK entries are
	// suppressed from evaluator output and exist only as an internal state.
	DueStatusOK DueStatus = "ok"
)

// severityRank orders statuses for output sorting: overdue first, then soon,
// then unknown. OK never appears in output.
var severityRank = map[DueStatus]int{
	DueStatusOverdue: 0,
	DueStatusSoon:    1,
	DueStatusUnknown: 2,
}

// SeverityRank returns the sort rank of s (lower sorts first).
// Unranked statuses sort last.
func (s DueStatus) SeverityRank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// DueService is one evaluated (truck, category) status entry. It is derived
// fresh on every evaluation and never persisted.
//
// LastServiceDate and LastServiceMileage are nil when Status is unknown —
// there is no record to report.
type DueService struct {
	TruckID            uuid.UUID  `json:"truck_id"`
	TruckNumber        string     `json:"truck_number"` // denormalized for display
	Category           Category   `json:"category"`
	Status             DueStatus  `json:"status"`
	DueIn              string     `json:"due_in"` // e.g. "1000 miles overdue", "12 days"
	LastServiceDate    *time.Time `json:"last_service_date,omitempty"`
	LastServiceMileage *int       `json:"last_service_mileage,omitempty"`
}

// AlertCount is the number of overdue and due-soon entries for one truck,
// used to drive per-truck alert badges.
type AlertCount struct {
	TruckID uuid.UUID `json:"truck_id"`
	Overdue int       `json:"overdue"`
	Soon    int       `json:"soon"`
}
