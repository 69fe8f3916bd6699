// Package service contains the business logic for the Fleet Maintenance API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/fleet-maintenance/backend/internal/domain"
	"github.com/pkordes/fleet-maintenance/backend/internal/repo"
)

// TruckService implements business logic for Truck operations.
type TruckService struct {
	trucks repo.TruckRepo
}

// NewTruckService constructs a TruckService backed by the provided TruckRepo.
func NewTruckService(trucks repo.TruckRepo) *TruckService {
	return &TruckService{trucks: trucks}
}

// Create validates and persists a new truck.
// Returns domain.ErrValidation if input violates business rules.
func (s *TruckService) Create(ctx context.Context, truck domain.Truck) (domain.Truck, error) {
	if err := validateTruck(truck); err != nil {
		return domain.Truck{}, err
	}
	result, err := s.trucks.Create(ctx, truck)
	if err != nil {
		return domain.Truck{}, fmt.Errorf("service.TruckService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single truck by ID.
// Returns domain.ErrNotFound if no truck with that ID exists.
func (s *TruckService) GetByID(ctx context.Context, id uuid.UUID) (domain.Truck, error) {
	result, err := s.trucks.GetByID(ctx, id)
	if err != nil {
		return domain.Truck{}, fmt.Errorf("service.TruckService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trucks ordered by truck number.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TruckService) List(ctx context.Context) ([]domain.Truck, error) {
	trucks, err := s.trucks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TruckService.List: %w", err)
	}
	if trucks == nil {
		return []domain.Truck{}, nil
	}
	return trucks, nil
}

// Update validates and persists changes to an existing truck.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// truck does not exist.
func (s *TruckService) Update(ctx context.Context, truck domain.Truck) (domain.Truck, error) {
	if err := validateTruck(truck); err != nil {
		return domain.Truck{}, err
	}
	result, err := s.trucks.Update(ctx, truck)
	if err != nil {
		return domain.Truck{}, fmt.Errorf("service.TruckService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a truck and, via the database cascade, all of its
// maintenance records. Returns domain.ErrNotFound if the truck does not exist.
func (s *TruckService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trucks.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TruckService.Delete: %w", err)
	}
	return nil
}

// validateTruck enforces business rules common to both Create and Update.
//   - TruckNumber must be non-empty (whitespace-only is rejected).
//   - Year, when set, must be plausible for a motor vehicle.
//   - CurrentMileage must be non-negative.
func validateTruck(truck domain.Truck) error {
	if strings.TrimSpace(truck.TruckNumber) == "" {
		return fmt.Errorf("%w: truck_number is required", domain.ErrValidation)
	}
	if truck.Year != 0 && (truck.Year < 1900 || truck.Year > time.Now().Year()+1) {
		return fmt.Errorf("%w: year %d is out of range", domain.ErrValidation, truck.Year)
	}
	if truck.CurrentMileage < 0 {
		return fmt.Errorf("%w: current_mileage must not be negative", domain.ErrValidation)
	}
	return nil
}
