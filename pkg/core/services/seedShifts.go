package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/sarahbetts/fieldrota/internal/config"
	"github.com/sarahbetts/fieldrota/pkg/core/wallclock"
	"github.com/sarahbetts/fieldrota/pkg/db"
)

// ShiftSeedStore defines the database operations needed to seed shifts
type ShiftSeedStore interface {
	GetShiftsBetween(ctx context.Context, from, to string) ([]db.Shift, error)
	InsertShifts(ctx context.Context, shifts []db.Shift, requirements []db.ShiftRequirement) error
}

// SeedResult represents the result of seeding shifts from the configured
// patterns
type SeedResult struct {
	Created []db.Shift
	Skipped int // dates that already had a shift in the same zone
}

// SeedShifts expands the configured shift patterns over [from, to) and
// inserts a shift record, with the pattern's role requirements, for every
// occurrence. Dates that already have a shift in the pattern's zone are
// left alone so seeding is safe to re-run.
//
// Occurrence dates are calendar dates: the rrule is expanded in UTC and
// only the date part is kept, so the organization timezone's DST changes
// cannot shift an occurrence onto a neighboring day.
func SeedShifts(ctx context.Context, store ShiftSeedStore, cfg *config.Config, logger *zap.Logger, from, to wallclock.LocalDate) (*SeedResult, error) {
	if len(cfg.ShiftPatterns) == 0 {
		return nil, fmt.Errorf("no shift patterns configured")
	}
	if err := from.Validate(); err != nil {
		return nil, err
	}
	if err := to.Validate(); err != nil {
		return nil, err
	}

	existing, err := store.GetShiftsBetween(ctx, from.String(), to.String())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing shifts: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s.Zone+"|"+s.Date] = true
	}

	fromUTC := time.Date(from.Year, from.Month, from.Day, 0, 0, 0, 0, time.UTC)
	toUTC := time.Date(to.Year, to.Month, to.Day, 0, 0, 0, 0, time.UTC)

	result := &SeedResult{}
	var shifts []db.Shift
	var requirements []db.ShiftRequirement

	for i, pattern := range cfg.ShiftPatterns {
		rule, err := rrule.StrToRRule(pattern.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in shiftPatterns[%d]: %w", i, err)
		}
		rule.DTStart(fromUTC)

		// Between's end bound is inclusive; back off one day to keep [from, to)
		for _, occurrence := range rule.Between(fromUTC, toUTC.AddDate(0, 0, -1), true) {
			date := occurrence.Format(wallclock.DateLayout)
			if seen[pattern.Zone+"|"+date] {
				result.Skipped++
				continue
			}
			seen[pattern.Zone+"|"+date] = true

			shift := db.Shift{
				ID:            uuid.New().String(),
				Zone:          pattern.Zone,
				Date:          date,
				MinVolunteers: pattern.MinVolunteers,
			}
			shifts = append(shifts, shift)

			for pos, req := range pattern.Requirements {
				requirements = append(requirements, db.ShiftRequirement{
					ID:          uuid.New().String(),
					ShiftID:     shift.ID,
					Role:        req.Role,
					MinRequired: req.MinRequired,
					MaxAllowed:  req.MaxAllowed,
					Position:    pos,
				})
			}
		}
	}

	if err := store.InsertShifts(ctx, shifts, requirements); err != nil {
		return nil, fmt.Errorf("failed to insert shifts: %w", err)
	}

	result.Created = shifts
	logger.Info("Shifts seeded",
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.Int("created", len(shifts)),
		zap.Int("skipped", result.Skipped))

	return result, nil
}
