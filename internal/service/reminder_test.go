package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/fleet-maintenance/backend/internal/domain"
	"github.com/pkordes/fleet-maintenance/backend/internal/service"
)

// evalNow is the pinned evaluation instant used throughout these tests.
// EvaluateDueServices takes "now" as a parameter precisely so tests can do this.
var evalNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

// daysAgo returns the instant n whole days before evalNow.
func daysAgo(n int) time.Time {
	return evalNow.AddDate(0, 0, -n)
}

func truckFixture(number string, mileage int) domain.Truck {
	return domain.Truck{ID: uuid.New(), TruckNumber: number, CurrentMileage: mileage}
}

func recordFixture(truckID uuid.UUID, cat domain.Category, date time.Time, mileage int) domain.MaintenanceRecord {
	return domain.MaintenanceRecord{
		ID:               uuid.New(),
		TruckID:          truckID,
		Date:             date,
		MileageAtService: mileage,
		Category:         cat,
	}
}

// freshRecords returns one just-serviced record per interval-table category,
// so a truck built from them evaluates to all-ok (nothing emitted).
func freshRecords(truck domain.Truck) []domain.MaintenanceRecord {
	var out []domain.MaintenanceRecord
	for _, si := range domain.ServiceIntervals {
		out = append(out, recordFixture(truck.ID, si.Category, daysAgo(1), truck.CurrentMileage))
	}
	return out
}

// replaceRecord swaps the record for the given category in place.
func replaceRecord(records []domain.MaintenanceRecord, cat domain.Category, rec domain.MaintenanceRecord) []domain.MaintenanceRecord {
	for i, r := range records {
		if r.Category == cat {
			records[i] = rec
		}
	}
	return records
}

// dropRecord removes the record for the given category.
func dropRecord(records []domain.MaintenanceRecord, cat domain.Category) []domain.MaintenanceRecord {
	var out []domain.MaintenanceRecord
	for _, r := range records {
		if r.Category != cat {
			out = append(out, r)
		}
	}
	return out
}

// ---- no history ------------------------------------------------------------

func TestEvaluateDueServices_NoHistory_OneUnknownPerCategory(t *testing.T) {
	truck := truckFixture("T-104", 55000)

	got := service.EvaluateDueServices(evalNow, []domain.Truck{truck}, nil)

	require.Len(t, got, len(domain.ServiceIntervals))
	for i, si := range domain.ServiceIntervals {
		assert.Equal(t, truck.ID, got[i].TruckID)
		assert.Equal(t, "T-104", got[i].TruckNumber)
		assert.Equal(t, si.Category, got[i].Category)
		assert.Equal(t, domain.DueStatusUnknown, got[i].Status)
		assert.Equal(t, "No service history", got[i].DueIn)
		assert.Nil(t, got[i].LastServiceDate)
		assert.Nil(t, got[i].LastServiceMileage)
	}
}

func TestEvaluateDueServices_BrakesNeverServiced_UnknownRegardlessOfMileage(t *testing.T) {
	truck := truckFixture("T-104", 999999)
	records := dropRecord(freshRecords(truck), domain.CategoryBrakes)

	got := service.EvaluateDueServices(evalNow, []domain.Truck{truck}, records)

	require.Len(t, got, 1)
	assert.Equal(t, domain.CategoryBrakes, got[0].Category)
	assert.Equal(t, domain.DueStatusUnknown, got[0].Status)
	assert.Equal(t, "No service history", got[0].DueIn)
}

// ---- ok suppression --------------------------------------------------------

func TestEvaluateDueServices_AllWithinBounds_NothingEmitted(t *testing.T) {
	truck := truckFixture("T-104", 55000)

	got := service.EvaluateDueServices(evalNow, []domain.Truck{truck}, freshRecords(truck))

	assert.Empty(t, got)
}

func TestEvaluateDueServices_TiresComfortablyUnderSoonWindow_OK(t *testing.T) {
	// 40000 miles since a tire service at mileage 0 is still under the
	// 45000-mile (90% of 50000) due-soon line.
	truck := truckFixture("T-104", 40000)
	records := replaceRecord(freshRecords(truck), domain.CategoryTires,
		recordFixture(truck.ID, domain.CategoryTires, daysAgo(10), 0))

	got := service.EvaluateDueServices(evalNow, []domain.Truck{truck}, records)

	assert.Empty(t, got)
}

func TestEvaluateDueServices_NegativeMileageDelta_NotDue(t *testing.T) {
	// Stale truck mileage: the last oil change was logged at a higher reading
	// than the truck currently shows. A negative delta must read as "not yet
	// due", not trip any threshold.
	truck := truckFixture("T-104", 55000)
	records := replaceRecord(freshRecords(truck), domain.CategoryOilChange,
		recordFixture(truck.ID, domain.CategoryOilChange, daysAgo(1), 60000))

	got := service.EvaluateDueServices(evalNow, []domain.Truck{truck}, records)

	assert.Empty(t, got)
}

// ---- overdue ---------------------------------------------------------------

func TestEvaluateDueServices_OilChangeOverdueByMileage(t *testing.T) {
	// 6000 miles since service against a 5000-mile interval; 95 days since
	// service would also be overdue, but the mileage check runs first and
	// supplies the message.
	truck := truckFixture("T-104", 55000)
	records := replaceRecord(freshRecords(truck), domain.CategoryOilChange,
		recordFixture(truck.ID, domain.CategoryOilChange, daysAgo(95), 49000))

	got := service.EvaluateDueServices(evalNow, []domain.Truck{truck}, records)

	require.Len(t, got, 1)
	assert.Equal(t, domain.CategoryOilChange, got[0].Category)
	assert.Equal(t, domain.DueStatusOverdue, got[0].Status)
	assert.Equal(t, "1000 miles overdue", got[0].DueIn)
	require.NotNil(t, got[0].LastServiceDate)
	assert.True(t, got[0].LastServiceDate.Equal(daysAgo(95)))
	require.NotNil(t, got[0].LastServiceMileage)
	assert.Equal(t, 49000, *got[0].LastServiceMileage)
}

func TestEvaluateDueServices_InspectionOverdueByDays(t *testing.T) {
	// Inspection has no mileage bound at all; 370 days against 365 is 5 over.
	truck := truckFixture("T-104", 55000)
	records := replaceRecord(freshRecords(truck), domain.CategoryInspection,
		recordFixture(truck.ID, domain.CategoryInspection, daysAgo(370), 50000))

	got := service.EvaluateDueServices(evalNow, []domain.Truck{truck}, records)

	require.Len(t, got, 1)
	assert.Equal(t, domain.CategoryInspection, got[0].Category)
	assert.Equal(t, domain.DueStatusOverdue, got[0].Status)
	assert.Equal(t, "5 days overdue", got[0].DueIn)
}

func TestEvaluateDueServices_DaysOverdueWhenMileageOnlySoon(t *testing.T) {
	// 4600 miles is inside the oil change due-soon window but 95 days is past
	// the 90-day bound: overdue-by-days must win over soon-by-miles.
	truck := truckFixture("T-104", 55000)
	records := replaceRecord(freshRecords(truck), domain.CategoryOilChange,
		recordFixture(truck.ID, domain.CategoryOilChange, daysAgo(95), 50400))

	got := service.EvaluateDueServices(evalNow, []domain.Truck{truck}, records)

	require.Len(t, got, 1)
	assert.Equal(t, domain.DueStatusOverdue, got[0].Status)
	assert.Equal(t, "5 days overdue", got[0].DueIn)
}

func TestEvaluateDueServices_ExactlyAtInterval_Overdue(t *testing.T) {
	// The bounds are inclusive: exactly 5000 miles since service is overdue
	// by zero miles, not due-soon.
	truck := truckFixture("T-104", 55000)
	records := replaceRecord(freshRecords(truck), domain.CategoryOilChange,
		recordFixture(truck.ID, domain.CategoryOilChange, daysAgo(1), 50000))

	got := service.EvaluateDueServices(evalNow, []domain.Truck{truck}, records)

	require.Len(t, got, 1)
	assert.Equal(t, domain.DueStatusOverdue, got[0].Status)
	assert.Equal(t, "0 miles overdue", got[0].DueIn)
}

// ---- due soon --------------------------------------------------------------

func TestEvaluateDueServices_SoonByMileage_ReportsRemainingMiles(t *testing.T) {
	// 4600 of 5000 miles used: past the 4500-mile 90% line, 400 miles left.
	truck := truckFixture("T-104", 55000)
	records := replaceRecord(freshRecords(truck), domain.CategoryOilChange,
		recordFixture(truck.ID, domain.CategoryOilChange, daysAgo(10), 50400))

	got := service.EvaluateDueServices(evalNow, []domain.Truck{truck}, records)

	require.Len(t, got, 1)
	assert.Equal(t, domain.DueStatusSoon, got[0].Status)
	assert.Equal(t, "400 miles", got[0].DueIn)
}

func TestEvaluateDueServices_SoonByDays_ReportsRemainingDays(t *testing.T) {
	// 340 of 365 days used: past the 328.5-day 90% line, 25 days left.
	truck := truckFixture("T-104", 55000)
	records := replaceRecord(freshRecords(truck), domain.CategoryInspection,
		recordFixture(truck.ID, domain.CategoryInspection, daysAgo(340), 55000))

	got := service.EvaluateDueServices(evalNow, []domain.Truck{truck}, records)

	require.Len(t, got, 1)
	assert.Equal(t, domain.DueStatusSoon, got[0].Status)
	assert.Equal(t, "25 days", got[0].DueIn)
}

func TestEvaluateDueServices_PartialDaysFloor(t *testing.T) {
	// 365 days minus one hour since the last inspection floors to 364 whole
	// days: not overdue yet, but inside the due-soon window with 1 day left.
	truck := truckFixture("T-104", 55000)
	records := replaceRecord(freshRecords(truck), domain.CategoryInspection,
		recordFixture(truck.ID, domain.CategoryInspection, daysAgo(365).Add(time.Hour), 55000))

	got := service.EvaluateDueServices(evalNow, []domain.Truck{truck}, records)

	require.Len(t, got, 1)
	assert.Equal(t, domain.DueStatusSoon, got[0].Status)
	assert.Equal(t, "1 days", got[0].DueIn)
}

// ---- latest-record selection -----------------------------------------------

func TestEvaluateDueServices_LatestRecordWins(t *testing.T) {
	// An ancient oil change is superseded by a fresh one: no entry.
	truck := truckFixture("T-104", 55000)
	records := append(freshRecords(truck),
		recordFixture(truck.ID, domain.CategoryOilChange, daysAgo(500), 10000))

	got := service.EvaluateDueServices(evalNow, []domain.Truck{truck}, records)

	assert.Empty(t, got)
}

func TestEvaluateDueServices_SameDateTie_GreaterIDWins(t *testing.T) {
	// Two oil changes logged on the same date. The record with the greater ID
	// must be picked no matter which order the records arrive in.
	truck := truckFixture("T-104", 55000)

	lowID := recordFixture(truck.ID, domain.CategoryOilChange, daysAgo(10), 49000) // would be overdue
	lowID.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	highID := recordFixture(truck.ID, domain.CategoryOilChange, daysAgo(10), 55000) // fresh
	highID.ID = uuid.MustParse("00000000-0000-0000-0000-000000000002")

	base := dropRecord(freshRecords(truck), domain.CategoryOilChange)

	for _, records := range [][]domain.MaintenanceRecord{
		append(append([]domain.MaintenanceRecord{}, base...), lowID, highID),
		append(append([]domain.MaintenanceRecord{}, base...), highID, lowID),
	} {
		got := service.EvaluateDueServices(evalNow, []domain.Truck{truck}, records)
		assert.Empty(t, got, "the fresh record with the greater ID must win the tie")
	}
}

func TestEvaluateDueServices_RecordsForOtherTrucksIgnored(t *testing.T) {
	truck := truckFixture("T-104", 55000)
	stranger := truckFixture("T-999", 80000)

	// Only the stranger has history; the evaluated truck must come back all
	// unknown even though records exist in the input.
	got := service.EvaluateDueServices(evalNow, []domain.Truck{truck}, freshRecords(stranger))

	require.Len(t, got, len(domain.ServiceIntervals))
	for _, d := range got {
		assert.Equal(t, domain.DueStatusUnknown, d.Status)
	}
}

// ---- ordering and determinism ----------------------------------------------

func TestEvaluateDueServices_SeverityOrdering(t *testing.T) {
	// Truck A has no history (all unknown). Truck B has one overdue oil
	// change and one due-soon inspection. Output must be grouped
	// overdue → soon → unknown, preserving generation order within a group.
	truckA := truckFixture("T-101", 30000)
	truckB := truckFixture("T-102", 55000)

	recordsB := freshRecords(truckB)
	recordsB = replaceRecord(recordsB, domain.CategoryOilChange,
		recordFixture(truckB.ID, domain.CategoryOilChange, daysAgo(95), 49000))
	recordsB = replaceRecord(recordsB, domain.CategoryInspection,
		recordFixture(truckB.ID, domain.CategoryInspection, daysAgo(340), 55000))

	got := service.EvaluateDueServices(evalNow, []domain.Truck{truckA, truckB}, recordsB)

	require.Len(t, got, 2+len(domain.ServiceIntervals))
	assert.Equal(t, domain.DueStatusOverdue, got[0].Status)
	assert.Equal(t, domain.CategoryOilChange, got[0].Category)
	assert.Equal(t, domain.DueStatusSoon, got[1].Status)
	assert.Equal(t, domain.CategoryInspection, got[1].Category)
	for i, si := range domain.ServiceIntervals {
		assert.Equal(t, domain.DueStatusUnknown, got[2+i].Status)
		assert.Equal(t, truckA.ID, got[2+i].TruckID)
		assert.Equal(t, si.Category, got[2+i].Category, "unknowns keep interval-table order")
	}
}

func TestEvaluateDueServices_Idempotent(t *testing.T) {
	truckA := truckFixture("T-101", 30000)
	truckB := truckFixture("T-102", 55000)
	records := replaceRecord(freshRecords(truckB), domain.CategoryOilChange,
		recordFixture(truckB.ID, domain.CategoryOilChange, daysAgo(95), 49000))

	first := service.EvaluateDueServices(evalNow, []domain.Truck{truckA, truckB}, records)
	second := service.EvaluateDueServices(evalNow, []domain.Truck{truckA, truckB}, records)

	assert.Equal(t, first, second)
}

func TestEvaluateDueServices_EmptyInputs(t *testing.T) {
	got := service.EvaluateDueServices(evalNow, nil, nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- alert counts ----------------------------------------------------------

func TestAlertCounts_CountsOverdueAndSoonPerTruck(t *testing.T) {
	truckID := uuid.New()
	otherID := uuid.New()
	due := []domain.DueService{
		{TruckID: truckID, Status: domain.DueStatusOverdue},
		{TruckID: otherID, Status: domain.DueStatusOverdue},
		{TruckID: truckID, Status: domain.DueStatusSoon},
		{TruckID: truckID, Status: domain.DueStatusOverdue},
		{TruckID: otherID, Status: domain.DueStatusUnknown}, // unknown is not an alert
	}

	got := service.AlertCounts(due)

	require.Len(t, got, 2)
	assert.Equal(t, domain.AlertCount{TruckID: truckID, Overdue: 2, Soon: 1}, got[0])
	assert.Equal(t, domain.AlertCount{TruckID: otherID, Overdue: 1, Soon: 0}, got[1])
}

func TestAlertCounts_UnknownOnly_NoEntries(t *testing.T) {
	due := []domain.DueService{
		{TruckID: uuid.New(), Status: domain.DueStatusUnknown},
	}

	got := service.AlertCounts(due)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- ReminderService -------------------------------------------------------

func TestReminderService_DueServices_UsesInjectedClock(t *testing.T) {
	truck := truckFixture("T-104", 55000)
	records := []domain.MaintenanceRecord{
		recordFixture(truck.ID, domain.CategoryOilChange, daysAgo(95), 49000),
	}

	svc := service.NewReminderService(
		&mockTruckRepo{list: func(_ context.Context) ([]domain.Truck, error) {
			return []domain.Truck{truck}, nil
		}},
		&mockRecordRepo{list: func(_ context.Context) ([]domain.MaintenanceRecord, error) {
			return records, nil
		}},
		func() time.Time { return evalNow },
	)

	got, err := svc.DueServices(context.Background())

	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, domain.DueStatusOverdue, got[0].Status)
	assert.Equal(t, "1000 miles overdue", got[0].DueIn)
}

func TestReminderService_DueServices_RepoError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := service.NewReminderService(
		&mockTruckRepo{list: func(_ context.Context) ([]domain.Truck, error) {
			return nil, boom
		}},
		&mockRecordRepo{},
		func() time.Time { return evalNow },
	)

	_, err := svc.DueServices(context.Background())

	assert.ErrorIs(t, err, boom)
}

func TestReminderService_Counts(t *testing.T) {
	truck := truckFixture("T-104", 55000)
	records := replaceRecord(freshRecords(truck), domain.CategoryOilChange,
		recordFixture(truck.ID, domain.CategoryOilChange, daysAgo(95), 49000))

	svc := service.NewReminderService(
		&mockTruckRepo{list: func(_ context.Context) ([]domain.Truck, error) {
			return []domain.Truck{truck}, nil
		}},
		&mockRecordRepo{list: func(_ context.Context) ([]domain.MaintenanceRecord, error) {
			return records, nil
		}},
		func() time.Time { return evalNow },
	)

	got, err := svc.Counts(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.AlertCount{TruckID: truck.ID, Overdue: 1, Soon: 0}, got[0])
}
