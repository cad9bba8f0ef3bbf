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

func seedConfig() *config.Config {
	return &config.Config{
		Timezone:          "America/New_York",
		WeekAnchorWeekday: "Sunday",
		Counties:          []string{"Hartford"},
		Zones:             []string{"North"},
		ShiftPatterns: []config.ShiftPattern{
			{
				RRule:         "FREQ=WEEKLY;BYDAY=SA",
				Zone:          "North",
				MinVolunteers: 3,
				Requirements: []config.RequirementSpec{
					{Role: "Dispatcher", MinRequired: 1},
					{Role: "Zone lead", MinRequired: 1, MaxAllowed: intPtr(1)},
				},
			},
		},
	}
}

func TestSeedShifts_CreatesWeeklyOccurrences(t *testing.T) {
	mockStore := &mockDigestStore{}
	logger := zap.NewNop()
	ctx := context.Background()

	from := wallclock.LocalDate{Year: 2025, Month: time.June, Day: 1}
	to := wallclock.LocalDate{Year: 2025, Month: time.June, Day: 29}
	result, err := SeedShifts(ctx, mockStore, seedConfig(), logger, from, to)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.Skipped)

	// Saturdays in [2025-06-01, 2025-06-29)
	require.Len(t, result.Created, 4)
	dates := make([]string, len(result.Created))
	for i, s := range result.Created {
		dates[i] = s.Date
		assert.Equal(t, "North", s.Zone)
		assert.Equal(t, 3, s.MinVolunteers)
		assert.NotEmpty(t, s.ID)
	}
	assert.Equal(t, []string{"2025-06-07", "2025-06-14", "2025-06-21", "2025-06-28"}, dates)

	require.Len(t, mockStore.insertedRequirements, 8)
	first := mockStore.insertedRequirements[0]
	assert.Equal(t, result.Created[0].ID, first.ShiftID)
	assert.Equal(t, "Dispatcher", first.Role)
	assert.Equal(t, 0, first.Position)
	second := mockStore.insertedRequirements[1]
	assert.Equal(t, "Zone lead", second.Role)
	assert.Equal(t, 1, second.Position)
	require.NotNil(t, second.MaxAllowed)
	assert.Equal(t, 1, *second.MaxAllowed)
}

func TestSeedShifts_ExistingDatesSkipped(t *testing.T) {
	mockStore := &mockDigestStore{
		shifts: []db.Shift{
			{ID: "existing-1", Zone: "North", Date: "2025-06-14", MinVolunteers: 3},
		},
	}
	logger := zap.NewNop()
	ctx := context.Background()

	from := wallclock.LocalDate{Year: 2025, Month: time.June, Day: 1}
	to := wallclock.LocalDate{Year: 2025, Month: time.June, Day: 29}
	result, err := SeedShifts(ctx, mockStore, seedConfig(), logger, from, to)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Created, 3)
	for _, s := range result.Created {
		assert.NotEqual(t, "2025-06-14", s.Date)
	}
}

func TestSeedShifts_NoPatternsConfigured(t *testing.T) {
	cfg := seedConfig()
	cfg.ShiftPatterns = nil
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := SeedShifts(ctx, &mockDigestStore{}, cfg, logger,
		wallclock.LocalDate{Year: 2025, Month: time.June, Day: 1},
		wallclock.LocalDate{Year: 2025, Month: time.June, Day: 29})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "no shift patterns configured")
}

func TestSeedShifts_InvalidDates(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	_, err := SeedShifts(ctx, &mockDigestStore{}, seedConfig(), logger,
		wallclock.LocalDate{Year: 2025, Month: time.February, Day: 30},
		wallclock.LocalDate{Year: 2025, Month: time.June, Day: 29})
	var malformed *wallclock.MalformedDateOrTimeError
	assert.ErrorAs(t, err, &malformed)
}

func TestSeedShifts_StoreError(t *testing.T) {
	mockStore := &mockDigestStore{err: fmt.Errorf("connection refused")}
	logger := zap.NewNop()
	ctx := context.Background()

	result, err := SeedShifts(ctx, mockStore, seedConfig(), logger,
		wallclock.LocalDate{Year: 2025, Month: time.June, Day: 1},
		wallclock.LocalDate{Year: 2025, Month: time.June, Day: 29})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "failed to fetch existing shifts")
}

func TestSeedShifts_DSTTransitionWeekKeepsCalendarDates(t *testing.T) {
	// Expansion in UTC keeps occurrences on their calendar dates across the
	// spring-forward transition.
	mockStore := &mockDigestStore{}
	logger := zap.NewNop()
	ctx := context.Background()

	from := wallclock.LocalDate{Year: 2025, Month: time.March, Day: 2}
	to := wallclock.LocalDate{Year: 2025, Month: time.March, Day: 16}
	result, err := SeedShifts(ctx, mockStore, seedConfig(), logger, from, to)

	require.NoError(t, err)
	require.Len(t, result.Created, 2)
	assert.Equal(t, "2025-03-08", result.Created[0].Date)
	assert.Equal(t, "2025-03-15", result.Created[1].Date)
}
