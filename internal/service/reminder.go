package service

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/fleet-maintenance/backend/internal/domain"
	"github.com/pkordes/fleet-maintenance/backend/internal/repo"
)

// soonThreshold is the fraction of an interval at which a service flips from
// ok to due-soon: at or past 90% of either bound the entry is reported.
const soonThreshold = 0.9

// EvaluateDueServices computes the due-service status of every truck against
// the fixed interval table in domain.ServiceIntervals.
//
// The function is pure: it reads no clock and touches no storage. The caller
// supplies "now" (normally time.Now(), pinned in tests) together with a
// consistent snapshot of trucks and records. Calling it twice with identical
// inputs yields identical output.
//
// Per truck (in input order) and per interval-table entry (in table order):
//
//   - No record for the (truck, category) pair → an "unknown" entry with the
//     text "No service history". Unknown is always emitted so that "never
//     serviced" stays visible; "ok" is always suppressed. The asymmetry is
//     intentional.
//   - Otherwise the latest record (by date, ties broken by greater record ID)
//     is compared against the rule. Overdue by either dimension beats due-soon
//     by either dimension, and within a severity the mileage dimension is
//     checked before the day dimension.
//
// Miles-since-service may be negative when the truck's stored mileage is stale;
// a negative delta simply never satisfies a threshold, which is the intended
// "not yet due" reading. Inputs are never rejected: records for unlisted
// trucks are ignored and malformed values compute through.
//
// The result holds only non-ok entries, stable-sorted by severity
// (overdue, soon, unknown); entries of equal severity keep truck-major,
// category-minor generation order.
func EvaluateDueServices(now time.Time, trucks []domain.Truck, records []domain.MaintenanceRecord) []domain.DueService {
	due := []domain.DueService{}

	for _, truck := range trucks {
		for _, interval := range domain.ServiceIntervals {
			last, ok := latestRecord(records, truck.ID, interval.Category)
			if !ok {
				due = append(due, domain.DueService{
					TruckID:     truck.ID,
					TruckNumber: truck.TruckNumber,
					Category:    interval.Category,
					Status:      domain.DueStatusUnknown,
					DueIn:       "No service history",
				})
				continue
			}

			entry := classify(now, truck, interval.Rule, last)
			if entry.Status == domain.DueStatusOK {
				continue
			}
			entry.TruckID = truck.ID
			entry.TruckNumber = truck.TruckNumber
			entry.Category = interval.Category
			due = append(due, entry)
		}
	}

	slices.SortStableFunc(due, func(a, b domain.DueService) int {
		return a.Status.SeverityRank() - b.Status.SeverityRank()
	})
	return due
}

// classify applies the interval rule to the latest record and returns a
// DueService carrying Status, DueIn, and the last-service snapshot. Truck and
// category identity fields are filled in by the caller.
//
// The precedence order is load-bearing: an overdue mileage condition must win
// over a due-soon day condition, and mileage is checked before days within
// each severity.
func classify(now time.Time, truck domain.Truck, rule domain.IntervalRule, last domain.MaintenanceRecord) domain.DueService {
	days := daysBetween(last.Date, now)
	miles := truck.CurrentMileage - last.MileageAtService

	entry := domain.DueService{
		Status:             domain.DueStatusOK,
		LastServiceDate:    &last.Date,
		LastServiceMileage: &last.MileageAtService,
	}

	switch {
	case rule.Miles != nil && miles >= *rule.Miles:
		entry.Status = domain.DueStatusOverdue
		entry.DueIn = fmt.Sprintf("%d miles overdue", miles-*rule.Miles)
	case rule.Days != nil && days >= *rule.Days:
		entry.Status = domain.DueStatusOverdue
		entry.DueIn = fmt.Sprintf("%d days overdue", days-*rule.Days)
	case rule.Miles != nil && float64(miles) >= float64(*rule.Miles)*soonThreshold:
		entry.Status = domain.DueStatusSoon
		entry.DueIn = fmt.Sprintf("%d miles", *rule.Miles-miles)
	case rule.Days != nil && float64(days) >= float64(*rule.Days)*soonThreshold:
		entry.Status = domain.DueStatusSoon
		entry.DueIn = fmt.Sprintf("%d days", *rule.Days-days)
	}
	return entry
}

// latestRecord returns the record for (truckID, category) with the latest
// date. Records dated identically are disambiguated by the greater record ID,
// so the pick is deterministic regardless of input order.
func latestRecord(records []domain.MaintenanceRecord, truckID uuid.UUID, category domain.Category) (domain.MaintenanceRecord, bool) {
	var best domain.MaintenanceRecord
	found := false
	for _, r := range records {
		if r.TruckID != truckID || r.Category != category {
			continue
		}
		if !found || r.Date.After(best.Date) ||
			(r.Date.Equal(best.Date) && uuidGreater(r.ID, best.ID)) {
			best = r
			found = true
		}
	}
	return best, found
}

// daysBetween returns the number of whole days from a to b, floored.
// A partial day counts as zero; when a is after b the result goes negative
// (floor, not truncation, so -0.5 days is -1).
func daysBetween(a, b time.Time) int {
	return int(math.Floor(b.Sub(a).Hours() / 24))
}

// uuidGreater reports whether a sorts after b bytewise.
func uuidGreater(a, b uuid.UUID) bool {
	return slices.Compare(a[:], b[:]) > 0
}

// AlertCounts folds a due-service list into per-truck overdue/soon counts for
// dashboard badges. Unknown entries do not count as alerts. Trucks appear in
// first-seen order; trucks with no alerts are absent.
func AlertCounts(due []domain.DueService) []domain.AlertCount {
	counts := []domain.AlertCount{}
	index := map[uuid.UUID]int{}

	for _, d := range due {
		if d.Status != domain.DueStatusOverdue && d.Status != domain.DueStatusSoon {
			continue
		}
		i, ok := index[d.TruckID]
		if !ok {
			i = len(counts)
			index[d.TruckID] = i
			counts = append(counts, domain.AlertCount{TruckID: d.TruckID})
		}
		switch d.Status {
		case domain.DueStatusOverdue:
			counts[i].Overdue++
		case domain.DueStatusSoon:
			counts[i].Soon++
		}
	}
	return counts
}

// ReminderService exposes due-service evaluation over the persistence layer.
// It loads a snapshot of all trucks and records and hands them to the pure
// EvaluateDueServices function with an injected clock.
type ReminderService struct {
	trucks  repo.TruckRepo
	records repo.RecordRepo
	now     func() time.Time
}

// NewReminderService constructs a ReminderService backed by the provided repos.
// now is the clock used as the evaluation instant; pass time.Now in production
// and a fixed func in tests.
func NewReminderService(trucks repo.TruckRepo, records repo.RecordRepo, now func() time.Time) *ReminderService {
	return &ReminderService{trucks: trucks, records: records, now: now}
}

// DueServices evaluates every truck in the fleet against the interval table.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ReminderService) DueServices(ctx context.Context) ([]domain.DueService, error) {
	trucks, err := s.trucks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ReminderService.DueServices: %w", err)
	}
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ReminderService.DueServices: %w", err)
	}
	return EvaluateDueServices(s.now(), trucks, records), nil
}

// Counts returns per-truck overdue/soon alert counts.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ReminderService) Counts(ctx context.Context) ([]domain.AlertCount, error) {
	due, err := s.DueServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ReminderService.Counts: %w", err)
	}
	return AlertCounts(due), nil
}
