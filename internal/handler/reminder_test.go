package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fleet-maintenance/backend/internal/domain"
	"github.com/pkordes/fleet-maintenance/backend/internal/handler"
)

// mockReminderServicer is a test double for handler.ReminderServicer.
type mockReminderServicer struct {
	dueServices func(ctx context.Context) ([]domain.DueService, error)
	counts      func(ctx context.Context) ([]domain.AlertCount, error)
}

func (m *mockReminderServicer) DueServices(ctx context.Context) ([]domain.DueService, error) {
	return m.dueServices(ctx)
}
func (m *mockReminderServicer) Counts(ctx context.Context) ([]domain.AlertCount, error) {
	return m.counts(ctx)
}

// compile-time check: mockReminderServicer must satisfy handler.ReminderServicer.
var _ handler.ReminderServicer = (*mockReminderServicer)(nil)

// ---- GET /reminders --------------------------------------------------------

func TestListDueServices_200(t *testing.T) {
	due := []domain.DueService{
		{
			TruckID:     uuid.New(),
			TruckNumber: "T-104",
			Category:    domain.CategoryOilChange,
			Status:      domain.DueStatusOverdue,
			DueIn:       "1000 miles overdue",
		},
		{
			TruckID:     uuid.New(),
			TruckNumber: "T-202",
			Category:    domain.CategoryInspection,
			Status:      domain.DueStatusSoon,
			DueIn:       "25 days",
		},
	}
	svc := &mockReminderServicer{
		dueServices: func(_ context.Context) ([]domain.DueService, error) { return due, nil },
	}

	req := httptest.NewRequest(http.MethodGet, "/reminders", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.DueService
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, domain.DueStatusOverdue, resp[0].Status)
	assert.Equal(t, "1000 miles overdue", resp[0].DueIn)
}

func TestListDueServices_200_Empty(t *testing.T) {
	svc := &mockReminderServicer{
		dueServices: func(_ context.Context) ([]domain.DueService, error) {
			return []domain.DueService{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/reminders", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	// Must be a JSON array, not null.
	assert.Contains(t, rec.Body.String(), "[")
}

func TestListDueServices_500(t *testing.T) {
	svc := &mockReminderServicer{
		dueServices: func(_ context.Context) ([]domain.DueService, error) {
			return nil, errors.New("connection refused")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/reminders", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ---- GET /reminders/counts -------------------------------------------------

func TestListAlertCounts_200(t *testing.T) {
	counts := []domain.AlertCount{
		{TruckID: uuid.New(), Overdue: 2, Soon: 1},
	}
	svc := &mockReminderServicer{
		counts: func(_ context.Context) ([]domain.AlertCount, error) { return counts, nil },
	}

	req := httptest.NewRequest(http.MethodGet, "/reminders/counts", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(nil, nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.AlertCount
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, 2, resp[0].Overdue)
	assert.Equal(t, 1, resp[0].Soon)
}
