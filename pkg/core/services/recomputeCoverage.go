package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sarahbetts/fieldrota/pkg/core/coverage"
	"github.com/sarahbetts/fieldrota/pkg/core/review"
	"github.com/sarahbetts/fieldrota/pkg/db"
)

// ShiftCoverageStore defines the database operations needed to recompute a
// shift's coverage state
type ShiftCoverageStore interface {
	GetShift(ctx context.Context, id string) (*db.Shift, error)
	GetShiftRequirements(ctx context.Context, shiftID string) ([]db.ShiftRequirement, error)
	GetShiftAssignments(ctx context.Context, shiftID string) ([]db.ShiftAssignment, error)
	GetCoverageState(ctx context.Context, shiftID string) (*db.CoverageState, error)
	UpsertCoverageState(ctx context.Context, state *db.CoverageState) error
}

// RecomputeResult represents the result of recomputing a shift's coverage
type RecomputeResult struct {
	Evaluation coverage.Result
	State      review.State
	Changed    bool
}

// RecomputeShiftCoverage re-evaluates a shift's confirmed assignments
// against its configured requirements and persists the resulting exception
// review state. It must be called whenever the shift's assignment set
// changes.
//
// The load-evaluate-persist cycle is not atomic; callers must serialize
// concurrent recomputes per shift ID (the CLI is single-writer, an API
// layer would hold a per-shift lock) so two racing assignment changes
// cannot persist stale state.
func RecomputeShiftCoverage(ctx context.Context, store ShiftCoverageStore, logger *zap.Logger, shiftID string) (*RecomputeResult, error) {
	logger.Debug("Recomputing shift coverage", zap.String("shift_id", shiftID))

	shift, err := store.GetShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift: %w", err)
	}

	requirements, err := store.GetShiftRequirements(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift requirements: %w", err)
	}

	assignments, err := store.GetShiftAssignments(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift assignments: %w", err)
	}

	evaluation := coverage.Evaluate(toModelRequirements(requirements), toModelAssignments(assignments), shift.MinVolunteers)

	priorRecord, err := store.GetCoverageState(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch coverage state: %w", err)
	}
	prior := stateFromRecord(priorRecord)

	next := review.Recompute(evaluation, prior)

	if err := store.UpsertCoverageState(ctx, stateToRecord(shiftID, next)); err != nil {
		return nil, fmt.Errorf("failed to persist coverage state: %w", err)
	}

	changed := prior.Status != next.Status || !equalNotes(prior.Notes, next.Notes)
	logger.Info("Shift coverage recomputed",
		zap.String("shift_id", shiftID),
		zap.Bool("has_exception", evaluation.HasException),
		zap.Int("note_count", len(evaluation.Notes)),
		zap.String("review_status", string(next.Status)),
		zap.Bool("changed", changed))

	return &RecomputeResult{
		Evaluation: evaluation,
		State:      next,
		Changed:    changed,
	}, nil
}

func equalNotes(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
