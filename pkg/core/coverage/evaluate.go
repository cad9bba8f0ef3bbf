// Package coverage evaluates a shift's confirmed assignments against its
// configured staffing requirements.
package coverage

import (
	"fmt"

	"github.com/sarahbetts/fieldrota/pkg/core/model"
)

// Result is the outcome of evaluating one shift. Notes are in a fixed
// order: per-role deficiencies and surpluses in configured requirement
// order, then the overall-minimum note last. The order is part of the
// contract because review state is keyed on the exact note set.
type Result struct {
	HasException bool
	Notes        []string
}

// Evaluate checks assignments against the configured role requirements and
// the shift-wide minimum headcount. It is a pure function with no side
// effects; the caller persists the result.
func Evaluate(requirements []model.RoleRequirement, assignments []model.ConfirmedAssignment, shiftMinVolunteers int) Result {
	var notes []string

	for _, req := range requirements {
		count := 0
		for _, a := range assignments {
			if a.Role == req.Role {
				count++
			}
		}

		if count < req.MinRequired {
			missing := req.MinRequired - count
			notes = append(notes, fmt.Sprintf("Need %d more %s", missing, pluralizeRole(req.Role, missing)))
		}

		if req.MaxAllowed != nil && count > *req.MaxAllowed {
			notes = append(notes, fmt.Sprintf("Exceeded max %ss (%d/%d)", req.Role, count, *req.MaxAllowed))
		}
	}

	// Overall minimum counts every confirmed assignment regardless of role.
	total := len(assignments)
	if total < shiftMinVolunteers {
		deficit := shiftMinVolunteers - total
		noun := "volunteer"
		if deficit != 1 {
			noun = "volunteers"
		}
		notes = append(notes, fmt.Sprintf("Need %d more %s (%d/%d minimum)", deficit, noun, total, shiftMinVolunteers))
	}

	return Result{
		HasException: len(notes) > 0,
		Notes:        notes,
	}
}

func pluralizeRole(role model.Role, n int) string {
	if n == 1 {
		return string(role)
	}
	return string(role) + "s"
}
