package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/fleet-maintenance/backend/internal/domain"
)

// ErrorResponse is the JSON error envelope returned by every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as JSON with the given status code.
// Encoding failures are logged, not surfaced — the status line is already
// committed by the time Encode runs.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("handler: encode response", "error", err)
	}
}

// writeError writes the standard error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeServiceError maps a service-layer error onto an HTTP response:
// domain.ErrNotFound → 404, domain.ErrValidation → 422, anything else → 500.
// notFoundMsg names what was being looked up (e.g. "truck not found") because
// the handler is the layer that knows.
func writeServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", notFoundMsg)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", validationMessage(err))
	default:
		slog.Error("handler: internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// decodeJSON decodes the request body into v, rejecting unknown fields so
// typos in client payloads fail loudly instead of silently dropping data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// queryTimeRange parses the optional ?range= query parameter, defaulting to
// "all". An unrecognized value is reported rather than silently widened.
func queryTimeRange(r *http.Request) (domain.TimeRange, bool) {
	raw := r.URL.Query().Get("range")
	if raw == "" {
		return domain.RangeAll, true
	}
	rng := domain.TimeRange(raw)
	return rng, rng.Valid()
}

// validationMessage extracts the human-readable part from a wrapped
// domain.ErrValidation error.
// e.g. "service.TruckService.Create: validation error: truck_number is required"
// → "truck_number is required".
func validationMessage(err error) string {
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
