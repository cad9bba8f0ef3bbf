package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sarahbetts/fieldrota/pkg/core/review"
	"github.com/sarahbetts/fieldrota/pkg/db"
)

// CoverageReviewStore defines the database operations needed for review
// transitions
type CoverageReviewStore interface {
	GetCoverageState(ctx context.Context, shiftID string) (*db.CoverageState, error)
	UpsertCoverageState(ctx context.Context, state *db.CoverageState) error
}

// DismissException marks a shift's unreviewed coverage exception as
// reviewed by the given operator. review.ErrNothingToReview is returned
// unwrapped when the shift has no exception awaiting review.
func DismissException(ctx context.Context, store CoverageReviewStore, logger *zap.Logger, shiftID, reviewer string, now time.Time) (*review.State, error) {
	record, err := store.GetCoverageState(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch coverage state: %w", err)
	}

	next, err := review.Dismiss(stateFromRecord(record), reviewer, now)
	if err != nil {
		return nil, err
	}

	if err := store.UpsertCoverageState(ctx, stateToRecord(shiftID, next)); err != nil {
		return nil, fmt.Errorf("failed to persist coverage state: %w", err)
	}

	logger.Info("Coverage exception dismissed",
		zap.String("shift_id", shiftID),
		zap.String("reviewer", reviewer),
		zap.Int("note_count", len(next.Notes)))

	return &next, nil
}

// ReopenException reopens a previously reviewed exception so it shows as
// unreviewed again.
func ReopenException(ctx context.Context, store CoverageReviewStore, logger *zap.Logger, shiftID string) (*review.State, error) {
	record, err := store.GetCoverageState(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch coverage state: %w", err)
	}

	next, err := review.Undismiss(stateFromRecord(record))
	if err != nil {
		return nil, err
	}

	if err := store.UpsertCoverageState(ctx, stateToRecord(shiftID, next)); err != nil {
		return nil, fmt.Errorf("failed to persist coverage state: %w", err)
	}

	logger.Info("Coverage exception reopened", zap.String("shift_id", shiftID))

	return &next, nil
}
