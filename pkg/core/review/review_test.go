package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarahbetts/fieldrota/pkg/core/coverage"
)

func TestRecompute_NoExceptionClearsState(t *testing.T) {
	prior := State{Status: StatusUnreviewed, Notes: []string{"Need 1 more Dispatcher"}}

	next := Recompute(coverage.Result{HasException: false}, prior)
	assert.Equal(t, StatusNoException, next.Status)
	assert.Empty(t, next.Notes)
}

func TestRecompute_NewExceptionIsUnreviewed(t *testing.T) {
	eval := coverage.Result{HasException: true, Notes: []string{"Need 1 more Dispatcher"}}

	next := Recompute(eval, NoException())
	assert.Equal(t, StatusUnreviewed, next.Status)
	assert.Equal(t, eval.Notes, next.Notes)
}

func TestRecompute_UnchangedNotesPreserveReviewed(t *testing.T) {
	notes := []string{"Need 1 more Dispatcher"}
	eval := coverage.Result{HasException: true, Notes: notes}

	unreviewed := Recompute(eval, NoException())
	reviewed, err := Dismiss(unreviewed, "op-1", time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	next := Recompute(eval, reviewed)
	assert.Equal(t, reviewed, next)
	assert.Equal(t, "op-1", next.Reviewer)
}

func TestRecompute_ChangedNotesForceRereview(t *testing.T) {
	reviewed, err := Dismiss(
		State{Status: StatusUnreviewed, Notes: []string{"Need 1 more Dispatcher"}},
		"op-1", time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	eval := coverage.Result{HasException: true, Notes: []string{
		"Need 1 more Dispatcher",
		"Need 1 more volunteer (2/3 minimum)",
	}}

	next := Recompute(eval, reviewed)
	assert.Equal(t, StatusUnreviewed, next.Status)
	assert.Equal(t, eval.Notes, next.Notes)
	assert.Empty(t, next.Reviewer, "a stale reviewed badge must not survive a changed note set")
}

func TestDismiss_OnlyFromUnreviewed(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	_, err := Dismiss(NoException(), "op-1", now)
	assert.ErrorIs(t, err, ErrNothingToReview)

	reviewed, err := Dismiss(State{Status: StatusUnreviewed, Notes: []string{"n"}}, "op-1", now)
	require.NoError(t, err)
	assert.Equal(t, StatusReviewed, reviewed.Status)
	assert.Equal(t, "op-1", reviewed.Reviewer)
	assert.Equal(t, now, reviewed.ReviewedAt)

	_, err = Dismiss(reviewed, "op-2", now)
	assert.ErrorIs(t, err, ErrNothingToReview)
}

func TestUndismiss_OnlyFromReviewed(t *testing.T) {
	reviewed := State{
		Status:     StatusReviewed,
		Notes:      []string{"Need 1 more Dispatcher"},
		Reviewer:   "op-1",
		ReviewedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}

	reopened, err := Undismiss(reviewed)
	require.NoError(t, err)
	assert.Equal(t, StatusUnreviewed, reopened.Status)
	assert.Equal(t, reviewed.Notes, reopened.Notes)
	assert.Empty(t, reopened.Reviewer)

	_, err = Undismiss(reopened)
	assert.ErrorIs(t, err, ErrNothingToReview)

	_, err = Undismiss(NoException())
	assert.ErrorIs(t, err, ErrNothingToReview)
}
