package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/fleet-maintenance/backend/internal/domain"
)

// RecordRequest is the body accepted by POST and PUT on the records routes.
// Date accepts either a bare date ("2006-01-02") or a full RFC 3339 timestamp.
type RecordRequest struct {
	Date             string   `json:"date"`
	MileageAtService int      `json:"mileage_at_service"`
	Category         string   `json:"category"`
	Description      string   `json:"description"`
	Cost             float64  `json:"cost"`
	PartsCost        float64  `json:"parts_cost"`
	LaborCost        float64  `json:"labor_cost"`
	ServiceProvider  string   `json:"service_provider"`
	Notes            string   `json:"notes"`
	Photos           []string `json:"photos"`
}

// toDomain maps the request body onto a domain.MaintenanceRecord.
// Returns an error when the date is missing or unparseable — malformed dates
// are rejected here at the boundary, never passed into the evaluator.
func (req RecordRequest) toDomain() (domain.MaintenanceRecord, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return domain.MaintenanceRecord{}, err
	}
	return domain.MaintenanceRecord{
		Date:             date,
		MileageAtService: req.MileageAtService,
		Category:         domain.Category(req.Category),
		Description:      req.Description,
		Cost:             req.Cost,
		PartsCost:        req.PartsCost,
		LaborCost:        req.LaborCost,
		ServiceProvider:  req.ServiceProvider,
		Notes:            req.Notes,
		Photos:           req.Photos,
	}, nil
}

// parseDate parses a service date as "2006-01-02", falling back to RFC 3339.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("date is required")
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("date must be YYYY-MM-DD or RFC 3339")
	}
	return t, nil
}

// PagedRecordsResponse is the envelope returned by GET /records.
type PagedRecordsResponse struct {
	Data       []domain.MaintenanceRecord `json:"data"`
	Pagination Pagination                 `json:"pagination"`
}

// Pagination echoes the applied page/limit values plus the total row count.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// CreateRecord handles POST /trucks/{truckID}/records.
func (s *Server) CreateRecord(w http.ResponseWriter, r *http.Request) {
	truckID, err := pathUUID(r, "truckID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid truck id")
		return
	}

	var req RecordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	rec, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}
	rec.TruckID = truckID

	created, err := s.records.Create(r.Context(), rec)
	if err != nil {
		writeServiceError(w, err, "truck not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListRecords handles GET /records.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))

	records, total, err := s.records.ListPaged(r.Context(), params)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, PagedRecordsResponse{
		Data: records,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// ListTruckRecords handles GET /trucks/{truckID}/records.
func (s *Server) ListTruckRecords(w http.ResponseWriter, r *http.Request) {
	truckID, err := pathUUID(r, "truckID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid truck id")
		return
	}

	records, err := s.records.ListByTruckID(r.Context(), truckID)
	if err != nil {
		writeServiceError(w, err, "truck not found")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// GetRecord handles GET /trucks/{truckID}/records/{recordID}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	truckID, recordID, ok := recordPathIDs(w, r)
	if !ok {
		return
	}

	rec, err := s.records.GetByID(r.Context(), truckID, recordID)
	if err != nil {
		writeServiceError(w, err, "record not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// UpdateRecord handles PUT /trucks/{truckID}/records/{recordID}.
func (s *Server) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	truckID, recordID, ok := recordPathIDs(w, r)
	if !ok {
		return
	}

	var req RecordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	rec, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
		return
	}
	rec.ID = recordID
	rec.TruckID = truckID

	updated, err := s.records.Update(r.Context(), rec)
	if err != nil {
		writeServiceError(w, err, "record not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteRecord handles DELETE /trucks/{truckID}/records/{recordID}.
func (s *Server) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	truckID, recordID, ok := recordPathIDs(w, r)
	if !ok {
		return
	}

	if err := s.records.Delete(r.Context(), truckID, recordID); err != nil {
		writeServiceError(w, err, "record not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// recordPathIDs parses both UUID path params, writing a 400 and returning
// ok=false when either is malformed.
func recordPathIDs(w http.ResponseWriter, r *http.Request) (truckID, recordID uuid.UUID, ok bool) {
	truckID, err := pathUUID(r, "truckID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid truck id")
		return truckID, recordID, false
	}
	recordID, err = pathUUID(r, "recordID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid record id")
		return truckID, recordID, false
	}
	return truckID, recordID, true
}

// queryInt parses an integer query parameter, returning nil when absent or
// malformed so pagination falls back to its defaults.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
