package services

import (
	"github.com/sarahbetts/fieldrota/pkg/core/model"
	"github.com/sarahbetts/fieldrota/pkg/core/review"
	"github.com/sarahbetts/fieldrota/pkg/db"
)

// toModelRequirements converts requirement records to domain values,
// preserving the stored configured order.
func toModelRequirements(records []db.ShiftRequirement) []model.RoleRequirement {
	requirements := make([]model.RoleRequirement, len(records))
	for i, rec := range records {
		requirements[i] = model.RoleRequirement{
			Role:        model.Role(rec.Role),
			MinRequired: rec.MinRequired,
			MaxAllowed:  rec.MaxAllowed,
		}
	}
	return requirements
}

func toModelAssignments(records []db.ShiftAssignment) []model.ConfirmedAssignment {
	assignments := make([]model.ConfirmedAssignment, len(records))
	for i, rec := range records {
		assignments[i] = model.ConfirmedAssignment{
			VolunteerID: rec.VolunteerID,
			Role:        model.Role(rec.Role),
			IsLead:      rec.IsLead,
		}
	}
	return assignments
}

func toModelShift(rec db.Shift, assignments []model.ConfirmedAssignment) model.Shift {
	return model.Shift{
		ID:            rec.ID,
		Zone:          rec.Zone,
		Date:          rec.Date,
		MinVolunteers: rec.MinVolunteers,
		Assignments:   assignments,
	}
}

// stateFromRecord converts a stored coverage state to the review variant.
// A missing record means the shift has never been evaluated, which reads as
// no exception.
func stateFromRecord(rec *db.CoverageState) review.State {
	if rec == nil {
		return review.NoException()
	}
	state := review.State{
		Status: review.Status(rec.Status),
		Notes:  rec.Notes,
	}
	if rec.ReviewedBy != nil {
		state.Reviewer = *rec.ReviewedBy
	}
	if rec.ReviewedAt != nil {
		state.ReviewedAt = *rec.ReviewedAt
	}
	return state
}

func stateToRecord(shiftID string, state review.State) *db.CoverageState {
	rec := &db.CoverageState{
		ShiftID:      shiftID,
		HasException: state.Status != review.StatusNoException,
		Notes:        state.Notes,
		Status:       string(state.Status),
	}
	if state.Status == review.StatusReviewed {
		reviewer := state.Reviewer
		reviewedAt := state.ReviewedAt
		rec.ReviewedBy = &reviewer
		rec.ReviewedAt = &reviewedAt
	}
	return rec
}
