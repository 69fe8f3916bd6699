package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/fleet-maintenance/backend/internal/domain"
)

// RecordRepo defines the persistence operations for MaintenanceRecords.
// All write and single-read operations are scoped by truckID to enforce ownership.
type RecordRepo interface {
	// Create inserts a new record and returns the persisted record.
	Create(ctx context.Context, rec domain.MaintenanceRecord) (domain.MaintenanceRecord, error)

	// GetByID retrieves a single record by its UUID, scoped to the given truckID.
	// Returns domain.ErrNotFound if no record with that ID exists under that truck.
	GetByID(ctx context.Context, truckID, recordID uuid.UUID) (domain.MaintenanceRecord, error)

	// List returns every maintenance record in the fleet ordered by date
	// descending. The reminder evaluator and the exporter both consume this
	// full snapshot.
	List(ctx context.Context) ([]domain.MaintenanceRecord, error)

	// ListPaged returns one page of records ordered by date descending together
	// with the total record count.
	ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.MaintenanceRecord, int64, error)

	// ListByTruckID returns all records for a truck ordered by date descending.
	ListByTruckID(ctx context.Context, truckID uuid.UUID) ([]domain.MaintenanceRecord, error)

	// Update overwrites the mutable fields of a record, scoped to the given truckID.
	// Returns domain.ErrNotFound if no record with that ID exists under that truck.
	Update(ctx context.Context, rec domain.MaintenanceRecord) (domain.MaintenanceRecord, error)

	// Delete removes a record by ID, scoped to the given truckID.
	// Returns domain.ErrNotFound if no record with that ID exists under that truck.
	Delete(ctx context.Context, truckID, recordID uuid.UUID) error
}

// pgRecordRepo is the Postgres implementation of RecordRepo.
type pgRecordRepo struct {
	db db
}

// NewRecordRepo constructs a RecordRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRecordRepo(db db) RecordRepo {
	return &pgRecordRepo{db: db}
}

const recordColumns = `id, truck_id, date, mileage_at_service, category, description,
		cost, parts_cost, labor_cost, service_provider, notes, photos, created_at, updated_at`

func (r *pgRecordRepo) Create(ctx context.Context, rec domain.MaintenanceRecord) (domain.MaintenanceRecord, error) {
	const q = `
		INSERT INTO maintenance_records
			(truck_id, date, mileage_at_service, category, description,
			 cost, parts_cost, labor_cost, service_provider, notes, photos)
		VALUES
			(@truck_id, @date, @mileage_at_service, @category, @description,
			 @cost, @parts_cost, @labor_cost, @service_provider, @notes, @photos)
		RETURNING ` + recordColumns

	row := r.db.QueryRow(ctx, q, recordArgs(rec))
	result, err := scanRecord(row)
	if err != nil {
		return domain.MaintenanceRecord{}, fmt.Errorf("repo.RecordRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgRecordRepo) GetByID(ctx context.Context, truckID, recordID uuid.UUID) (domain.MaintenanceRecord, error) {
	const q = `
		SELECT ` + recordColumns + `
		FROM maintenance_records
		WHERE id = @id AND truck_id = @truck_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": recordID, "truck_id": truckID})
	result, err := scanRecord(row)
	if err != nil {
		return domain.MaintenanceRecord{}, fmt.Errorf("repo.RecordRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgRecordRepo) List(ctx context.Context) ([]domain.MaintenanceRecord, error) {
	const q = `
		SELECT ` + recordColumns + `
		FROM maintenance_records
		ORDER BY date DESC, id DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.RecordRepo.List: %w", err)
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.RecordRepo.List: %w", err)
	}
	return records, nil
}

func (r *pgRecordRepo) ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.MaintenanceRecord, int64, error) {
	const countQ = `SELECT count(*) FROM maintenance_records`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.RecordRepo.ListPaged: count: %w", err)
	}

	const q = `
		SELECT ` + recordColumns + `
		FROM maintenance_records
		ORDER BY date DESC, id DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": params.Limit, "offset": params.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.RecordRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.RecordRepo.ListPaged: %w", err)
	}
	return records, total, nil
}

func (r *pgRecordRepo) ListByTruckID(ctx context.Context, truckID uuid.UUID) ([]domain.MaintenanceRecord, error) {
	const q = `
		SELECT ` + recordColumns + `
		FROM maintenance_records
		WHERE truck_id = @truck_id
		ORDER BY date DESC, id DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"truck_id": truckID})
	if err != nil {
		return nil, fmt.Errorf("repo.RecordRepo.ListByTruckID: %w", err)
	}
	defer rows.Close()

	records, err := collectRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.RecordRepo.ListByTruckID: %w", err)
	}
	return records, nil
}

func (r *pgRecordRepo) Update(ctx context.Context, rec domain.MaintenanceRecord) (domain.MaintenanceRecord, error) {
	const q = `
		UPDATE maintenance_records
		SET date               = @date,
		    mileage_at_service = @mileage_at_service,
		    category           = @category,
		    description        = @description,
		    cost               = @cost,
		    parts_cost         = @parts_cost,
		    labor_cost         = @labor_cost,
		    service_provider   = @service_provider,
		    notes              = @notes,
		    photos             = @photos,
		    updated_at         = now()
		WHERE id = @id AND truck_id = @truck_id
		RETURNING ` + recordColumns

	args := recordArgs(rec)
	args["id"] = rec.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRecord(row)
	if err != nil {
		return domain.MaintenanceRecord{}, fmt.Errorf("repo.RecordRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgRecordRepo) Delete(ctx context.Context, truckID, recordID uuid.UUID) error {
	const q = `DELETE FROM maintenance_records WHERE id = @id AND truck_id = @truck_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": recordID, "truck_id": truckID})
	if err != nil {
		return fmt.Errorf("repo.RecordRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.RecordRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// recordArgs builds the named-args map shared by Create and Update.
func recordArgs(rec domain.MaintenanceRecord) pgx.NamedArgs {
	photos := rec.Photos
	if photos == nil {
		photos = []string{} // store an empty array, not NULL
	}
	return pgx.NamedArgs{
		"truck_id":           rec.TruckID,
		"date":               rec.Date,
		"mileage_at_service": rec.MileageAtService,
		"category":           string(rec.Category),
		"description":        rec.Description,
		"cost":               rec.Cost,
		"parts_cost":         rec.PartsCost,
		"labor_cost":         rec.LaborCost,
		"service_provider":   rec.ServiceProvider,
		"notes":              rec.Notes,
		"photos":             photos,
	}
}

// collectRecords drains rows into a slice, checking the rows error afterwards.
func collectRecords(rows pgx.Rows) ([]domain.MaintenanceRecord, error) {
	var records []domain.MaintenanceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return records, nil
}

// scanRecord maps a single database row into a domain.MaintenanceRecord.
// It handles the UUID conversions and the text[] photos column.
func scanRecord(s scanner) (domain.MaintenanceRecord, error) {
	var (
		rec      domain.MaintenanceRecord
		id       pgtype.UUID
		truckID  pgtype.UUID
		category string
	)

	err := s.Scan(&id, &truckID, &rec.Date, &rec.MileageAtService, &category,
		&rec.Description, &rec.Cost, &rec.PartsCost, &rec.LaborCost,
		&rec.ServiceProvider, &rec.Notes, &rec.Photos, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MaintenanceRecord{}, domain.ErrNotFound
		}
		return domain.MaintenanceRecord{}, err
	}

	rec.ID = uuid.UUID(id.Bytes)
	rec.TruckID = uuid.UUID(truckID.Bytes)
	rec.Category = domain.Category(category)
	return rec, nil
}
