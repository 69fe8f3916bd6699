// Package handler implements the HTTP handlers for the Fleet Maintenance API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, truck.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/fleet-maintenance/backend/internal/domain"
)

// TruckServicer defines the business operations the truck handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TruckServicer interface {
	Create(ctx context.Context, truck domain.Truck) (domain.Truck, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Truck, error)
	List(ctx context.Context) ([]domain.Truck, error)
	Update(ctx context.Context, truck domain.Truck) (domain.Truck, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecordServicer defines the business operations the record handlers depend on.
type RecordServicer interface {
	Create(ctx context.Context, rec domain.MaintenanceRecord) (domain.MaintenanceRecord, error)
	GetByID(ctx context.Context, truckID, recordID uuid.UUID) (domain.MaintenanceRecord, error)
	ListPaged(ctx context.Context, params domain.PaginationParams) ([]domain.MaintenanceRecord, int64, error)
	ListByTruckID(ctx context.Context, truckID uuid.UUID) ([]domain.MaintenanceRecord, error)
	Update(ctx context.Context, rec domain.MaintenanceRecord) (domain.MaintenanceRecord, error)
	Delete(ctx context.Context, truckID, recordID uuid.UUID) error
}

// ReminderServicer defines the due-service evaluation operations the
// reminder handlers depend on.
type ReminderServicer interface {
	DueServices(ctx context.Context) ([]domain.DueService, error)
	Counts(ctx context.Context) ([]domain.AlertCount, error)
}

// StatsServicer defines the analytics operations the stats handlers depend on.
type StatsServicer interface {
	Summary(ctx context.Context, rng domain.TimeRange) (domain.CostSummary, error)
	CostByCategory(ctx context.Context, rng domain.TimeRange) ([]domain.CategoryCost, error)
	CostByTruck(ctx context.Context, rng domain.TimeRange) ([]domain.TruckCost, error)
	MonthlyCosts(ctx context.Context, rng domain.TimeRange) ([]domain.MonthlyCost, error)
}

// ExportServicer defines the export operation the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server holds the dependencies for all API endpoints.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	trucks    TruckServicer
	records   RecordServicer
	reminders ReminderServicer
	stats     StatsServicer
	export    ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trucks TruckServicer, records RecordServicer, reminders ReminderServicer, stats StatsServicer, export ExportServicer) *Server {
	return &Server{trucks: trucks, records: records, reminders: reminders, stats: stats, export: export}
}

// Routes returns the chi router with every API endpoint registered.
// Mount it at "/" in main.go.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/trucks", func(r chi.Router) {
		r.Get("/", s.ListTrucks)
		r.Post("/", s.CreateTruck)
		r.Route("/{truckID}", func(r chi.Router) {
			r.Get("/", s.GetTruck)
			r.Put("/", s.UpdateTruck)
			r.Delete("/", s.DeleteTruck)
			r.Route("/records", func(r chi.Router) {
				r.Get("/", s.ListTruckRecords)
				r.Post("/", s.CreateRecord)
				r.Get("/{recordID}", s.GetRecord)
				r.Put("/{recordID}", s.UpdateRecord)
				r.Delete("/{recordID}", s.DeleteRecord)
			})
		})
	})

	r.Get("/records", s.ListRecords)

	r.Get("/reminders", s.ListDueServices)
	r.Get("/reminders/counts", s.ListAlertCounts)

	r.Route("/stats", func(r chi.Router) {
		r.Get("/summary", s.GetCostSummary)
		r.Get("/by-category", s.GetCostByCategory)
		r.Get("/by-truck", s.GetCostByTruck)
		r.Get("/monthly", s.GetMonthlyCosts)
	})

	r.Get("/export", s.GetExport)

	return r
}
