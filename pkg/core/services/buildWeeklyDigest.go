package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sarahbetts/fieldrota/internal/config"
	"github.com/sarahbetts/fieldrota/pkg/core/model"
	"github.com/sarahbetts/fieldrota/pkg/core/wallclock"
	"github.com/sarahbetts/fieldrota/pkg/core/weekly"
	"github.com/sarahbetts/fieldrota/pkg/db"
)

// DigestStore defines the read operations the weekly digest is built from
type DigestStore interface {
	GetShiftsBetween(ctx context.Context, from, to string) ([]db.Shift, error)
	GetAssignmentsForShifts(ctx context.Context, shiftIDs []string) ([]db.ShiftAssignment, error)
	GetDispatcherAssignmentsBetween(ctx context.Context, from, to string) ([]db.DispatcherAssignment, error)
	GetRegionalLeadAssignmentsBetween(ctx context.Context, from, to string) ([]db.RegionalLeadAssignment, error)
}

// BuildWeeklyDigest builds the coverage report for the week containing
// anchorDate, from a fresh snapshot of the store. The report is never
// persisted; every call recomputes it.
func BuildWeeklyDigest(ctx context.Context, store DigestStore, cfg *config.Config, logger *zap.Logger, anchorDate wallclock.LocalDate) (*weekly.Report, error) {
	loc, err := wallclock.LoadZone(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	anchorWeekday, err := cfg.AnchorWeekday()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve week anchor weekday: %w", err)
	}

	startDate := wallclock.WeekStartDate(anchorDate, anchorWeekday)
	from := startDate.String()
	to := startDate.AddDays(7).String()

	logger.Debug("Building weekly digest",
		zap.String("week_start", from),
		zap.String("timezone", cfg.Timezone))

	shiftRecords, err := store.GetShiftsBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}

	shiftIDs := make([]string, len(shiftRecords))
	for i, s := range shiftRecords {
		shiftIDs[i] = s.ID
	}

	assignmentRecords, err := store.GetAssignmentsForShifts(ctx, shiftIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift assignments: %w", err)
	}

	assignmentsByShift := make(map[string][]model.ConfirmedAssignment)
	for _, rec := range assignmentRecords {
		assignmentsByShift[rec.ShiftID] = append(assignmentsByShift[rec.ShiftID], model.ConfirmedAssignment{
			VolunteerID: rec.VolunteerID,
			Role:        model.Role(rec.Role),
			IsLead:      rec.IsLead,
		})
	}

	shifts := make([]model.Shift, len(shiftRecords))
	for i, rec := range shiftRecords {
		shifts[i] = toModelShift(rec, assignmentsByShift[rec.ID])
	}

	dispatcherRecords, err := store.GetDispatcherAssignmentsBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dispatcher assignments: %w", err)
	}
	dispatchers := make([]model.DispatcherAssignment, len(dispatcherRecords))
	for i, rec := range dispatcherRecords {
		dispatchers[i] = model.DispatcherAssignment(rec)
	}

	leadRecords, err := store.GetRegionalLeadAssignmentsBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch regional lead assignments: %w", err)
	}
	leads := make([]model.RegionalLeadAssignment, len(leadRecords))
	for i, rec := range leadRecords {
		leads[i] = model.RegionalLeadAssignment(rec)
	}

	report, err := weekly.Aggregate(weekly.Input{
		WeekAnchor:    anchorDate,
		Zone:          loc,
		AnchorWeekday: anchorWeekday,
		Counties:      cfg.Counties,
		Zones:         cfg.Zones,
		Shifts:        shifts,
		Dispatchers:   dispatchers,
		RegionalLeads: leads,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate weekly coverage: %w", err)
	}

	logDSTResolutions(logger, startDate, loc)

	if report.SkippedRecords > 0 {
		logger.Warn("Skipped malformed records while building digest",
			zap.Int("skipped", report.SkippedRecords))
	}

	logger.Info("Weekly digest built",
		zap.String("week_start", from),
		zap.Int("total_shifts", report.TotalShifts),
		zap.Int("positions_needed", report.PositionsNeeded))

	return report, nil
}

// logDSTResolutions warns when any day boundary in the week fell on a DST
// transition and the wallclock policy had to resolve it.
func logDSTResolutions(logger *zap.Logger, startDate wallclock.LocalDate, loc *time.Location) {
	for i := 0; i <= 7; i++ {
		date := startDate.AddDays(i)
		if _, resolution, err := wallclock.MidnightInstant(date, loc); err == nil && resolution != wallclock.ResolutionExact {
			logger.Warn("Day boundary fell on a DST transition",
				zap.String("date", date.String()),
				zap.String("resolution", resolution.String()))
		}
	}
}
