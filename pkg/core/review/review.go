// Package review tracks whether an understaffed or overstaffed shift has
// been looked at by an operator.
//
// The state is a tagged variant rather than a pair of nullable fields, so
// a "reviewed" timestamp without an exception is unrepresentable.
package review

import (
	"errors"
	"slices"
	"time"

	"github.com/sarahbetts/fieldrota/pkg/core/coverage"
)

// ErrNothingToReview is returned when a dismiss or undismiss is attempted
// from a state that has nothing to act on.
var ErrNothingToReview = errors.New("shift has no reviewable exception")

// Status is the review position of a shift's coverage exception.
type Status string

const (
	StatusNoException Status = "no_exception"
	StatusUnreviewed  Status = "unreviewed"
	StatusReviewed    Status = "reviewed"
)

// State is the reviewable exception state of one shift. Notes is the exact
// note set the state applies to; a Reviewed state is only meaningful
// against the notes it was reviewed with. Reviewer and ReviewedAt are set
// only when Status is StatusReviewed.
type State struct {
	Status     Status
	Notes      []string
	Reviewer   string
	ReviewedAt time.Time
}

// NoException is the state of a fully staffed shift.
func NoException() State {
	return State{Status: StatusNoException}
}

// Recompute derives the next review state from a fresh evaluation. A prior
// Reviewed state survives only while the note set is unchanged; any change
// to the underlying deficiencies forces re-review so operators never see a
// stale reviewed badge.
func Recompute(eval coverage.Result, prior State) State {
	if !eval.HasException {
		return NoException()
	}

	if slices.Equal(prior.Notes, eval.Notes) {
		switch prior.Status {
		case StatusReviewed, StatusUnreviewed:
			return prior
		}
	}

	return State{Status: StatusUnreviewed, Notes: slices.Clone(eval.Notes)}
}

// Dismiss marks an unreviewed exception as reviewed by the given operator.
// Valid only from StatusUnreviewed.
func Dismiss(prior State, reviewer string, now time.Time) (State, error) {
	if prior.Status != StatusUnreviewed {
		return State{}, ErrNothingToReview
	}
	return State{
		Status:     StatusReviewed,
		Notes:      slices.Clone(prior.Notes),
		Reviewer:   reviewer,
		ReviewedAt: now,
	}, nil
}

// Undismiss reopens a reviewed exception. Valid only from StatusReviewed.
func Undismiss(prior State) (State, error) {
	if prior.Status != StatusReviewed {
		return State{}, ErrNothingToReview
	}
	return State{Status: StatusUnreviewed, Notes: slices.Clone(prior.Notes)}, nil
}
