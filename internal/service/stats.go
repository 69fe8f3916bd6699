package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/fleet-maintenance/backend/internal/domain"
	"github.com/pkordes/fleet-maintenance/backend/internal/repo"
)

// StatsService computes cost analytics over the maintenance history.
// All aggregation happens in memory over a full record snapshot — the fleet
// sizes this application targets (tens of trucks, thousands of records) make
// a SQL rollup per chart unnecessary.
type StatsService struct {
	trucks  repo.TruckRepo
	records repo.RecordRepo
	now     func() time.Time
}

// NewStatsService constructs a StatsService backed by the provided repos.
// now anchors the relative time ranges; pass time.Now in production.
func NewStatsService(trucks repo.TruckRepo, records repo.RecordRepo, now func() time.Time) *StatsService {
	return &StatsService{trucks: trucks, records: records, now: now}
}

// Summary returns total/average cost, service count, and distinct trucks
// serviced within the given time range.
func (s *StatsService) Summary(ctx context.Context, rng domain.TimeRange) (domain.CostSummary, error) {
	records, err := s.filteredRecords(ctx, rng)
	if err != nil {
		return domain.CostSummary{}, fmt.Errorf("service.StatsService.Summary: %w", err)
	}

	sum := domain.CostSummary{TotalServices: len(records)}
	trucksSeen := map[uuid.UUID]struct{}{}
	for _, r := range records {
		sum.TotalCost += r.Cost
		trucksSeen[r.TruckID] = struct{}{}
	}
	sum.TrucksServiced = len(trucksSeen)
	if len(records) > 0 {
		sum.AvgCost = sum.TotalCost / float64(len(records))
	}
	return sum, nil
}

// CostByCategory returns total spending per category within the time range,
// sorted by cost descending. Categories with zero spending are omitted.
func (s *StatsService) CostByCategory(ctx context.Context, rng domain.TimeRange) ([]domain.CategoryCost, error) {
	records, err := s.filteredRecords(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("service.StatsService.CostByCategory: %w", err)
	}

	totals := map[domain.Category]float64{}
	for _, r := range records {
		cat := r.Category
		if !cat.Valid() {
			cat = domain.CategoryOther
		}
		totals[cat] += r.Cost
	}

	// Walk the canonical category order so equal costs tie-break consistently.
	out := []domain.CategoryCost{}
	for _, cat := range domain.Categories {
		if totals[cat] > 0 {
			out = append(out, domain.CategoryCost{Category: cat, Label: cat.Label(), Cost: totals[cat]})
		}
	}
	slices.SortStableFunc(out, func(a, b domain.CategoryCost) int {
		switch {
		case a.Cost > b.Cost:
			return -1
		case a.Cost < b.Cost:
			return 1
		}
		return 0
	})
	return out, nil
}

// CostByTruck returns total spending per truck within the time range, sorted
// by cost descending and capped at the ten most expensive trucks. Trucks with
// zero spending are omitted.
func (s *StatsService) CostByTruck(ctx context.Context, rng domain.TimeRange) ([]domain.TruckCost, error) {
	records, err := s.filteredRecords(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("service.StatsService.CostByTruck: %w", err)
	}
	trucks, err := s.trucks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.StatsService.CostByTruck: %w", err)
	}

	totals := map[uuid.UUID]float64{}
	for _, r := range records {
		totals[r.TruckID] += r.Cost
	}

	// Walk the truck list (ordered by truck number) so equal costs tie-break
	// consistently, then sort by cost.
	out := []domain.TruckCost{}
	for _, t := range trucks {
		if totals[t.ID] > 0 {
			out = append(out, domain.TruckCost{TruckID: t.ID, TruckNumber: t.TruckNumber, Cost: totals[t.ID]})
		}
	}
	slices.SortStableFunc(out, func(a, b domain.TruckCost) int {
		switch {
		case a.Cost > b.Cost:
			return -1
		case a.Cost < b.Cost:
			return 1
		}
		return 0
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out, nil
}

// MonthlyCosts returns per-calendar-month spending within the time range,
// ascending by month and capped at the most recent twelve months with any
// spending. Month keys use "2006-01" format.
func (s *StatsService) MonthlyCosts(ctx context.Context, rng domain.TimeRange) ([]domain.MonthlyCost, error) {
	records, err := s.filteredRecords(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("service.StatsService.MonthlyCosts: %w", err)
	}

	totals := map[string]float64{}
	for _, r := range records {
		totals[r.Date.Format("2006-01")] += r.Cost
	}

	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	slices.Sort(months)
	if len(months) > 12 {
		months = months[len(months)-12:]
	}

	out := make([]domain.MonthlyCost, 0, len(months))
	for _, m := range months {
		out = append(out, domain.MonthlyCost{Month: m, Cost: totals[m]})
	}
	return out, nil
}

// filteredRecords loads all records and keeps those on or after the range's
// start date. RangeAll skips the filter entirely.
func (s *StatsService) filteredRecords(ctx context.Context, rng domain.TimeRange) ([]domain.MaintenanceRecord, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}
	if rng == domain.RangeAll || rng == "" {
		return records, nil
	}

	start, ok := rangeStart(s.now(), rng)
	if !ok {
		return records, nil
	}
	out := []domain.MaintenanceRecord{}
	for _, r := range records {
		if !r.Date.Before(start) {
			out = append(out, r)
		}
	}
	return out, nil
}

// rangeStart returns the inclusive start instant for a relative time range.
// The boundaries mirror the dashboard's reading of "this month", "this
// quarter" (first of the month three months back), and "this year".
func rangeStart(now time.Time, rng domain.TimeRange) (time.Time, bool) {
	switch rng {
	case domain.RangeMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case domain.RangeQuarter:
		return time.Date(now.Year(), now.Month()-3, 1, 0, 0, 0, 0, now.Location()), true
	case domain.RangeYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), true
	}
	return time.Time{}, false
}
