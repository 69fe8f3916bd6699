package handler

import "net/http"

// All four stats endpoints accept an optional ?range= query parameter with
// values all|month|quarter|year (default all).

// GetCostSummary handles GET /stats/summary.
func (s *Server) GetCostSummary(w http.ResponseWriter, r *http.Request) {
	rng, ok := queryTimeRange(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid range; expected all, month, quarter, or year")
		return
	}

	summary, err := s.stats.Summary(r.Context(), rng)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetCostByCategory handles GET /stats/by-category.
func (s *Server) GetCostByCategory(w http.ResponseWriter, r *http.Request) {
	rng, ok := queryTimeRange(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid range; expected all, month, quarter, or year")
		return
	}

	costs, err := s.stats.CostByCategory(r.Context(), rng)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, costs)
}

// GetCostByTruck handles GET /stats/by-truck.
func (s *Server) GetCostByTruck(w http.ResponseWriter, r *http.Request) {
	rng, ok := queryTimeRange(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid range; expected all, month, quarter, or year")
		return
	}

	costs, err := s.stats.CostByTruck(r.Context(), rng)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, costs)
}

// GetMonthlyCosts handles GET /stats/monthly.
func (s *Server) GetMonthlyCosts(w http.ResponseWriter, r *http.Request) {
	rng, ok := queryTimeRange(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid range; expected all, month, quarter, or year")
		return
	}

	costs, err := s.stats.MonthlyCosts(r.Context(), rng)
	if err != nil {
		writeServiceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, costs)
}
