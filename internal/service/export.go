package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/fleet-maintenance/backend/internal/domain"
	"github.com/pkordes/fleet-maintenance/backend/internal/repo"
)

// ExportService assembles a full flat export of the maintenance history.
type ExportService struct {
	trucks  repo.TruckRepo
	records repo.RecordRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trucks repo.TruckRepo, records repo.RecordRepo) *ExportService {
	return &ExportService{trucks: trucks, records: records}
}

// Export returns one ExportRow per maintenance record, joined with the owning
// truck's identifying fields, ordered by date descending (the record repo's
// natural order). Records referencing an unknown truck are skipped rather
// than exported half-empty; the cascade makes that state unreachable outside
// a torn snapshot.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	trucks, err := s.trucks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	byID := make(map[uuid.UUID]domain.Truck, len(trucks))
	for _, t := range trucks {
		byID[t.ID] = t
	}

	rows := []domain.ExportRow{}
	for _, r := range records {
		truck, ok := byID[r.TruckID]
		if !ok {
			continue
		}
		rows = append(rows, domain.ExportRow{
			RecordID:    r.ID.String(),
			Date:        r.Date,
			Mileage:     r.MileageAtService,
			Category:    r.Category,
			Description: r.Description,
			Cost:        r.Cost,
			PartsCost:   r.PartsCost,
			LaborCost:   r.LaborCost,
			Provider:    r.ServiceProvider,
			Notes:       r.Notes,
			TruckID:     truck.ID.String(),
			TruckNumber: truck.TruckNumber,
			Make:        truck.Make,
			Model:       truck.Model,
		})
	}
	return rows, nil
}
