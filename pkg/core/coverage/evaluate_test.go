package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sarahbetts/fieldrota/pkg/core/model"
)

func intPtr(n int) *int {
	return &n
}

func TestEvaluate_FullyStaffed(t *testing.T) {
	requirements := []model.RoleRequirement{
		{Role: model.RoleDispatcher, MinRequired: 1, MaxAllowed: intPtr(2)},
	}
	assignments := []model.ConfirmedAssignment{
		{VolunteerID: "v1", Role: model.RoleDispatcher},
		{VolunteerID: "v2", Role: model.RoleVolunteer},
	}

	result := Evaluate(requirements, assignments, 2)
	assert.False(t, result.HasException)
	assert.Empty(t, result.Notes)
}

func TestEvaluate_UnderstaffedRoleAndOverallMinimum(t *testing.T) {
	requirements := []model.RoleRequirement{
		{Role: model.RoleDispatcher, MinRequired: 2, MaxAllowed: intPtr(4)},
	}
	assignments := []model.ConfirmedAssignment{
		{VolunteerID: "v1", Role: model.RoleDispatcher},
	}

	result := Evaluate(requirements, assignments, 3)
	assert.True(t, result.HasException)
	assert.Equal(t, []string{
		"Need 1 more Dispatcher",
		"Need 2 more volunteers (1/3 minimum)",
	}, result.Notes)
}

func TestEvaluate_PluralizesRoleDeficits(t *testing.T) {
	requirements := []model.RoleRequirement{
		{Role: model.RoleDispatcher, MinRequired: 3},
	}

	result := Evaluate(requirements, nil, 0)
	assert.Equal(t, []string{"Need 3 more Dispatchers"}, result.Notes)
}

func TestEvaluate_ExceededMax(t *testing.T) {
	requirements := []model.RoleRequirement{
		{Role: model.RoleDispatcher, MinRequired: 1, MaxAllowed: intPtr(2)},
	}
	assignments := []model.ConfirmedAssignment{
		{VolunteerID: "v1", Role: model.RoleDispatcher},
		{VolunteerID: "v2", Role: model.RoleDispatcher},
		{VolunteerID: "v3", Role: model.RoleDispatcher},
	}

	result := Evaluate(requirements, assignments, 1)
	assert.True(t, result.HasException)
	assert.Equal(t, []string{"Exceeded max Dispatchers (3/2)"}, result.Notes)
}

func TestEvaluate_NoMaxMeansUnbounded(t *testing.T) {
	requirements := []model.RoleRequirement{
		{Role: model.RoleDispatcher, MinRequired: 1},
	}
	assignments := make([]model.ConfirmedAssignment, 10)
	for i := range assignments {
		assignments[i] = model.ConfirmedAssignment{VolunteerID: "v", Role: model.RoleDispatcher}
	}

	result := Evaluate(requirements, assignments, 1)
	assert.False(t, result.HasException)
}

func TestEvaluate_NotesFollowRequirementOrder(t *testing.T) {
	requirements := []model.RoleRequirement{
		{Role: model.RoleZoneLead, MinRequired: 1},
		{Role: model.RoleDispatcher, MinRequired: 2, MaxAllowed: intPtr(2)},
	}
	assignments := []model.ConfirmedAssignment{
		{VolunteerID: "v1", Role: model.RoleDispatcher},
		{VolunteerID: "v2", Role: model.RoleDispatcher},
		{VolunteerID: "v3", Role: model.RoleDispatcher},
	}

	result := Evaluate(requirements, assignments, 5)
	assert.Equal(t, []string{
		"Need 1 more Zone lead",
		"Exceeded max Dispatchers (3/2)",
		"Need 2 more volunteers (3/5 minimum)",
	}, result.Notes)
}

func TestEvaluate_OverallMinimumCountsAllRoles(t *testing.T) {
	// The shift-wide minimum counts every confirmed assignment, including
	// ones with no role at all.
	assignments := []model.ConfirmedAssignment{
		{VolunteerID: "v1", Role: model.RoleDispatcher},
		{VolunteerID: "v2"},
		{VolunteerID: "v3", Role: model.RoleZoneLead, IsLead: true},
	}

	result := Evaluate(nil, assignments, 3)
	assert.False(t, result.HasException)

	result = Evaluate(nil, assignments, 4)
	assert.Equal(t, []string{"Need 1 more volunteer (3/4 minimum)"}, result.Notes)
}

func TestEvaluate_ZeroMinimumsNeverFlag(t *testing.T) {
	result := Evaluate(nil, nil, 0)
	assert.False(t, result.HasException)
	assert.Empty(t, result.Notes)
}
