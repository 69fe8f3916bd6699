package handler

import "net/http"

// ListDueServices handles GET /reminders.
// It evaluates the whole fleet against the service-interval table at request
// time and returns the non-ok entries, overdue first.
func (s *Server) ListDueServices(w http.ResponseWriter, r *http.Request) {
	due, err := s.reminders.DueServices(r.Context())
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, due)
}

// ListAlertCounts handles GET /reminders/counts.
// It returns per-truck overdue/soon counts for alert badges.
func (s *Server) ListAlertCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := s.reminders.Counts(r.Context())
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
