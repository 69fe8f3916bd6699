// Package repo contains all database access logic for the Fleet Maintenance API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/fleet-maintenance/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TruckRepo defines the persistence operations for Trucks.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TruckRepo interface {
	// Create inserts a new truck and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, truck domain.Truck) (domain.Truck, error)

	// GetByID retrieves a single truck by its UUID primary key.
	// Returns domain.ErrNotFound if no truck with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Truck, error)

	// List returns all trucks ordered by truck_number ascending.
	List(ctx context.Context) ([]domain.Truck, error)

	// Update overwrites the mutable fields of an existing truck and returns the
	// updated record. Returns domain.ErrNotFound if no truck with that ID exists.
	Update(ctx context.Context, truck domain.Truck) (domain.Truck, error)

	// RaiseMileage lifts the truck's current_mileage to mileage if (and only if)
	// mileage is greater than the stored value. A lower value is a no-op, not an
	// error. Returns domain.ErrNotFound if no truck with that ID exists.
	RaiseMileage(ctx context.Context, id uuid.UUID, mileage int) error

	// Delete removes a truck by ID; its maintenance records go with it
	// (ON DELETE CASCADE). Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTruckRepo is the Postgres implementation of TruckRepo.
type pgTruckRepo struct {
	db db
}

// NewTruckRepo constructs a TruckRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTruckRepo(db db) TruckRepo {
	return &pgTruckRepo{db: db}
}

// Create inserts a new truck row and returns the full persisted record.
func (r *pgTruckRepo) Create(ctx context.Context, truck domain.Truck) (domain.Truck, error) {
	const q = `
		INSERT INTO trucks (truck_number, make, model, year, vin, current_mileage, notes)
		VALUES (@truck_number, @make, @model, @year, @vin, @current_mileage, @notes)
		RETURNING id, truck_number, make, model, year, vin, current_mileage, notes, created_at, updated_at`

	args := pgx.NamedArgs{
		"truck_number":    truck.TruckNumber,
		"make":            truck.Make,
		"model":           truck.Model,
		"year":            truck.Year,
		"vin":             truck.VIN,
		"current_mileage": truck.CurrentMileage,
		"notes":           truck.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTruck(row)
	if err != nil {
		return domain.Truck{}, fmt.Errorf("repo.TruckRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a truck by primary key.
func (r *pgTruckRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Truck, error) {
	const q = `
		SELECT id, truck_number, make, model, year, vin, current_mileage, notes, created_at, updated_at
		FROM trucks
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanTruck(row)
	if err != nil {
		return domain.Truck{}, fmt.Errorf("repo.TruckRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trucks ordered by truck_number ascending.
func (r *pgTruckRepo) List(ctx context.Context) ([]domain.Truck, error) {
	const q = `
		SELECT id, truck_number, make, model, year, vin, current_mileage, notes, created_at, updated_at
		FROM trucks
		ORDER BY truck_number ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TruckRepo.List: %w", err)
	}
	defer rows.Close()

	var trucks []domain.Truck
	for rows.Next() {
		t, err := scanTruck(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TruckRepo.List: scan: %w", err)
		}
		trucks = append(trucks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TruckRepo.List: rows: %w", err)
	}

	return trucks, nil
}

// Update overwrites the mutable fields of a truck and returns the updated record.
func (r *pgTruckRepo) Update(ctx context.Context, truck domain.Truck) (domain.Truck, error) {
	const q = `
		UPDATE trucks
		SET truck_number    = @truck_number,
		    make            = @make,
		    model           = @model,
		    year            = @year,
		    vin             = @vin,
		    current_mileage = @current_mileage,
		    notes           = @notes,
		    updated_at      = now()
		WHERE id = @id
		RETURNING id, truck_number, make, model, year, vin, current_mileage, notes, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":              truck.ID,
		"truck_number":    truck.TruckNumber,
		"make":            truck.Make,
		"model":           truck.Model,
		"year":            truck.Year,
		"vin":             truck.VIN,
		"current_mileage": truck.CurrentMileage,
		"notes":           truck.Notes,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanTruck(row)
	if err != nil {
		return domain.Truck{}, fmt.Errorf("repo.TruckRepo.Update: %w", err)
	}
	return result, nil
}

// RaiseMileage lifts current_mileage with GREATEST so the check-and-set is a
// single atomic statement; concurrent record inserts cannot lower the value.
func (r *pgTruckRepo) RaiseMileage(ctx context.Context, id uuid.UUID, mileage int) error {
	const q = `
		UPDATE trucks
		SET current_mileage = GREATEST(current_mileage, @mileage),
		    updated_at      = now()
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "mileage": mileage})
	if err != nil {
		return fmt.Errorf("repo.TruckRepo.RaiseMileage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TruckRepo.RaiseMileage: %w", domain.ErrNotFound)
	}
	return nil
}

// Delete removes a truck by primary key. The FK on maintenance_records is
// declared ON DELETE CASCADE, so the truck's records are removed in the same
// statement.
func (r *pgTruckRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trucks WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TruckRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TruckRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTruck maps a single database row into a domain.Truck.
func scanTruck(s scanner) (domain.Truck, error) {
	var (
		t  domain.Truck
		id pgtype.UUID
	)

	err := s.Scan(&id, &t.TruckNumber, &t.Make, &t.Model, &t.Year, &t.VIN,
		&t.CurrentMileage, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Truck{}, domain.ErrNotFound
		}
		return domain.Truck{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
