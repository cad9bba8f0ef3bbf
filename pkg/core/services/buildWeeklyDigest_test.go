package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sarahbetts/fieldrota/internal/config"
	"github.com/sarahbetts/fieldrota/pkg/core/wallclock"
	"github.com/sarahbetts/fieldrota/pkg/db"
)

// mockDigestStore implements DigestStore and ShiftSeedStore for testing
type mockDigestStore struct {
	shifts        []db.Shift
	assignments   []db.ShiftAssignment
	dispatchers   []db.DispatcherAssignment
	regionalLeads []db.RegionalLeadAssignment

	shiftsFrom, shiftsTo string
	insertedShifts       []db.Shift
	insertedRequirements []db.ShiftRequirement
	err                  error
}

func (m *mockDigestStore) GetShiftsBetween(ctx context.Context, from, to string) ([]db.Shift, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.shiftsFrom, m.shiftsTo = from, to
	return m.shifts, nil
}

func (m *mockDigestStore) GetAssignmentsForShifts(ctx context.Context, shiftIDs []string) ([]db.ShiftAssignment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.assignments, nil
}

func (m *mockDigestStore) GetDispatcherAssignmentsBetween(ctx context.Context, from, to string) ([]db.DispatcherAssignment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.dispatchers, nil
}

func (m *mockDigestStore) GetRegionalLeadAssignmentsBetween(ctx context.Context, from, to string) ([]db.RegionalLeadAssignment, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.regionalLeads, nil
}

func (m *mockDigestStore) InsertShifts(ctx context.Context, shifts []db.Shift, requirements []db.ShiftRequirement) error {
	if m.err != nil {
		return m.err
	}
	m.insertedShifts = append(m.insertedShifts, shifts...)
	m.insertedRequirements = append(m.insertedRequirements, requirements...)
	return nil
}

func digestConfig() *config.Config {
	return &config.Config{
		Timezone:          "America/New_York",
		WeekAnchorWeekday: "Sunday",
		Counties:          []string{"Hartford", "Tolland"},
		Zones:             []string{"North", "South"},
	}
}

func TestBuildWeeklyDigest_QueriesWholeWeek(t *testing.T) {
	mockStore := &mockDigestStore{
		shifts: []db.Shift{
			{ID: "shift-1", Zone: "North", Date: "2025-06-09", MinVolunteers: 2},
		},
		assignments: []db.ShiftAssignment{
			{ID: "a-1", ShiftID: "shift-1", VolunteerID: "vol-1", Role: "Zone lead", IsLead: true},
		},
		dispatchers: []db.DispatcherAssignment{
			{ID: "d-1", County: "Hartford", Date: "2025-06-09", TimeBlock: "Morning", VolunteerID: "vol-2"},
		},
		regionalLeads: []db.RegionalLeadAssignment{
			{ID: "rl-1", Date: "2025-06-09", IsPrimary: true, VolunteerID: "vol-3"},
		},
	}
	logger := zap.NewNop()
	ctx := context.Background()

	// Wednesday; the containing Sunday-anchored week is June 8-14.
	anchor := wallclock.LocalDate{Year: 2025, Month: time.June, Day: 11}
	report, err := BuildWeeklyDigest(ctx, mockStore, digestConfig(), logger, anchor)

	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, "2025-06-08", mockStore.shiftsFrom)
	assert.Equal(t, "2025-06-15", mockStore.shiftsTo, "end bound is exclusive")

	require.Len(t, report.Days, 7)
	assert.Equal(t, 1, report.TotalShifts)

	monday := report.Days[1]
	assert.Equal(t, wallclock.LocalDate{Year: 2025, Month: time.June, Day: 9}, monday.Date)
	require.NotNil(t, monday.RegionalLead)
	assert.Equal(t, "vol-3", monday.RegionalLead.VolunteerID)
	require.NotNil(t, monday.DispatchersByCounty["Hartford"])
	assert.Equal(t, "vol-2", monday.DispatchersByCounty["Hartford"].VolunteerID)
	require.NotNil(t, monday.ZoneLeadsByZone["North"])
	assert.Equal(t, "vol-1", monday.ZoneLeadsByZone["North"].VolunteerID)

	// Monday fills 3 of the week's 7*(1+2+2) slots.
	assert.Equal(t, 7*(1+2+2)-3, report.PositionsNeeded)
}

func TestBuildWeeklyDigest_UnknownTimezone(t *testing.T) {
	cfg := digestConfig()
	cfg.Timezone = "America/Narnia"
	logger := zap.NewNop()
	ctx := context.Background()

	report, err := BuildWeeklyDigest(ctx, &mockDigestStore{}, cfg, logger, wallclock.LocalDate{Year: 2025, Month: time.June, Day: 11})

	require.Error(t, err)
	assert.Nil(t, report)
	var tzErr *wallclock.InvalidTimeZoneError
	assert.ErrorAs(t, err, &tzErr)
}

func TestBuildWeeklyDigest_StoreError(t *testing.T) {
	mockStore := &mockDigestStore{err: fmt.Errorf("connection refused")}
	logger := zap.NewNop()
	ctx := context.Background()

	report, err := BuildWeeklyDigest(ctx, mockStore, digestConfig(), logger, wallclock.LocalDate{Year: 2025, Month: time.June, Day: 11})

	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "failed to fetch shifts")
}

func TestBuildWeeklyDigest_MalformedRecordsSkipped(t *testing.T) {
	mockStore := &mockDigestStore{
		regionalLeads: []db.RegionalLeadAssignment{
			{ID: "rl-1", Date: "garbage", VolunteerID: "vol-1"},
			{ID: "rl-2", Date: "2025-06-10", IsPrimary: true, VolunteerID: "vol-2"},
		},
	}
	logger := zap.NewNop()
	ctx := context.Background()

	report, err := BuildWeeklyDigest(ctx, mockStore, digestConfig(), logger, wallclock.LocalDate{Year: 2025, Month: time.June, Day: 11})

	require.NoError(t, err)
	assert.Equal(t, 1, report.SkippedRecords)
	require.NotNil(t, report.Days[2].RegionalLead)
	assert.Equal(t, "vol-2", report.Days[2].RegionalLead.VolunteerID)
}
