package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/fleet-maintenance/backend/internal/domain"
	"github.com/pkordes/fleet-maintenance/backend/internal/repo"
)

// RecordService implements business logic for MaintenanceRecord operations.
// It holds both repos because creating a record requires verifying the parent
// truck exists and may raise that truck's current mileage.
type RecordService struct {
	trucks  repo.TruckRepo
	records repo.RecordRepo
}

// NewRecordService constructs a RecordService backed by the provided repos.
func NewRecordService(trucks repo.TruckRepo, records repo.RecordRepo) *RecordService {
	return &RecordService{trucks: trucks, records: records}
}

// Create validates the record, verifies the parent truck exists, persists the
// record, and raises the truck's current mileage when the logged
// mileage-at-service exceeds it. A mechanic entering a fresh odometer reading
// on the service form is the usual way a truck's mileage gets updated.
// Returns domain.ErrValidation if input violates business rules.
// Returns domain.ErrNotFound if the parent truck does not exist.
func (s *RecordService) Create(ctx context.Context, rec domain.MaintenanceRecord) (domain.MaintenanceRecord, error) {
	if _, err := s.trucks.GetByID(ctx, rec.TruckID); err != nil {
		return domain.MaintenanceRecord{}, fmt.Errorf("service.RecordService.Create: %w", err)
	}
	if err := validateRecord(rec); err != nil {
		return domain.MaintenanceRecord{}, err
	}
	result, err := s.records.Create(ctx, rec)
	if err != nil {
		return domain.MaintenanceRecord{}, fmt.Errorf("service.RecordService.Create: %w", err)
	}
	if err := s.trucks.RaiseMileage(ctx, rec.TruckID, rec.MileageAtService); err != nil {
		return domain.MaintenanceRecord{}, fmt.Errorf("service.RecordService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single record by ID, scoped to the given truckID.
// Returns domain.ErrNotFound if no record with that ID exists under that truck.
func (s *RecordService) GetByID(ctx context.Context, truckID, recordID uuid.UUID) (domain.MaintenanceRecord, error) {
	result, err := s.records.GetByID(ctx, truckID, recordID)
	if err != nil {
		return domain.MaintenanceRecord{}, fmt.Errorf("service.RecordService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of all maintenance records (fleet-wide) ordered
// by date descending, plus the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *RecordService) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.MaintenanceRecord, int64, error) {
	records, total, err := s.records.ListPaged(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("service.RecordService.ListPaged: %w", err)
	}
	if records == nil {
		records = []domain.MaintenanceRecord{}
	}
	return records, total, nil
}

// ListByTruckID returns all records for a truck ordered by date descending.
// Returns domain.ErrNotFound if the truck does not exist.
// Always returns a non-nil slice so callers can safely range over it.
func (s *RecordService) ListByTruckID(ctx context.Context, truckID uuid.UUID) ([]domain.MaintenanceRecord, error) {
	if _, err := s.trucks.GetByID(ctx, truckID); err != nil {
		return nil, fmt.Errorf("service.RecordService.ListByTruckID: %w", err)
	}
	records, err := s.records.ListByTruckID(ctx, truckID)
	if err != nil {
		return nil, fmt.Errorf("service.RecordService.ListByTruckID: %w", err)
	}
	if records == nil {
		return []domain.MaintenanceRecord{}, nil
	}
	return records, nil
}

// Update validates and persists changes to an existing record, raising the
// truck's current mileage when the edited mileage-at-service exceeds it.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// record does not exist under the given truck.
func (s *RecordService) Update(ctx context.Context, rec domain.MaintenanceRecord) (domain.MaintenanceRecord, error) {
	if err := validateRecord(rec); err != nil {
		return domain.MaintenanceRecord{}, err
	}
	result, err := s.records.Update(ctx, rec)
	if err != nil {
		return domain.MaintenanceRecord{}, fmt.Errorf("service.RecordService.Update: %w", err)
	}
	if err := s.trucks.RaiseMileage(ctx, rec.TruckID, rec.MileageAtService); err != nil {
		return domain.MaintenanceRecord{}, fmt.Errorf("service.RecordService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a record by ID, scoped to the given truckID.
// Returns domain.ErrNotFound if the record does not exist under the given truck.
func (s *RecordService) Delete(ctx context.Context, truckID, recordID uuid.UUID) error {
	if err := s.records.Delete(ctx, truckID, recordID); err != nil {
		return fmt.Errorf("service.RecordService.Delete: %w", err)
	}
	return nil
}

// validateRecord enforces business rules common to both Create and Update.
//   - Category must be one of the enumerated set.
//   - Date must be set.
//   - MileageAtService and all cost fields must be non-negative.
//
// Note the costs are independent amounts: Cost is not required to equal
// PartsCost + LaborCost, since many shops quote a flat total.
func validateRecord(rec domain.MaintenanceRecord) error {
	if !rec.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, rec.Category)
	}
	if rec.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if rec.MileageAtService < 0 {
		return fmt.Errorf("%w: mileage_at_service must not be negative", domain.ErrValidation)
	}
	if rec.Cost < 0 || rec.PartsCost < 0 || rec.LaborCost < 0 {
		return fmt.Errorf("%w: costs must not be negative", domain.ErrValidation)
	}
	return nil
}
