// Package handler — export.go implements GET /export.
// Returns the full maintenance history as a flat table, one row per record
// with the owning truck's fields repeated.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/pkordes/fleet-maintenance/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"date", "truck_number", "make", "model", "mileage", "category",
	"description", "cost", "parts_cost", "labor_cost", "service_provider", "notes",
}

// GetExport handles GET /export.
// Use ?format=csv to receive CSV (served as an attachment); default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.export.Export(r.Context())
	if err != nil {
		writeServiceError(w, err, "")
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// writeCSV encodes export rows as CSV with a header row and sends them as a
// downloadable attachment.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write(csvRecord(r))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="maintenance-export.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// csvRecord encodes one export row as a flat string slice.
// encoding/csv handles quoting, so free-text fields pass through untouched.
func csvRecord(r domain.ExportRow) []string {
	return []string{
		r.Date.Format("2006-01-02"),
		r.TruckNumber,
		r.Make,
		r.Model,
		strconv.Itoa(r.Mileage),
		string(r.Category),
		r.Description,
		formatAmount(r.Cost),
		formatAmount(r.PartsCost),
		formatAmount(r.LaborCost),
		r.Provider,
		r.Notes,
	}
}

// formatAmount renders a monetary amount with two decimal places.
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
