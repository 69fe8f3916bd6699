package handler

import (
	"net/http"

	"github.com/pkordes/fleet-maintenance/backend/internal/domain"
)

// TruckRequest is the body accepted by POST /trucks and PUT /trucks/{truckID}.
type TruckRequest struct {
	TruckNumber    string `json:"truck_number"`
	Make           string `json:"make"`
	Model          string `json:"model"`
	Year           int    `json:"year"`
	VIN            string `json:"vin"`
	CurrentMileage int    `json:"current_mileage"`
	Notes          string `json:"notes"`
}

// toDomain maps the request body onto a domain.Truck. ID and timestamps are
// left zero; the repo fills them in.
func (req TruckRequest) toDomain() domain.Truck {
	return domain.Truck{
		TruckNumber:    req.TruckNumber,
		Make:           req.Make,
		Model:          req.Model,
		Year:           req.Year,
		VIN:            req.VIN,
		CurrentMileage: req.CurrentMileage,
		Notes:          req.Notes,
	}
}

// CreateTruck handles POST /trucks.
func (s *Server) CreateTruck(w http.ResponseWriter, r *http.Request) {
	var req TruckRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	created, err := s.trucks.Create(r.Context(), req.toDomain())
	if err != nil {
		writeServiceError(w, err, "truck not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTrucks handles GET /trucks.
func (s *Server) ListTrucks(w http.ResponseWriter, r *http.Request) {
	trucks, err := s.trucks.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, trucks)
}

// GetTruck handles GET /trucks/{truckID}.
func (s *Server) GetTruck(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "truckID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid truck id")
		return
	}

	truck, err := s.trucks.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "truck not found")
		return
	}
	writeJSON(w, http.StatusOK, truck)
}

// UpdateTruck handles PUT /trucks/{truckID}.
func (s *Server) UpdateTruck(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "truckID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid truck id")
		return
	}

	var req TruckRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}

	truck := req.toDomain()
	truck.ID = id

	updated, err := s.trucks.Update(r.Context(), truck)
	if err != nil {
		writeServiceError(w, err, "truck not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTruck handles DELETE /trucks/{truckID}.
// Deleting a truck removes its maintenance records as well.
func (s *Server) DeleteTruck(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "truckID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid truck id")
		return
	}

	if err := s.trucks.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, "truck not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
