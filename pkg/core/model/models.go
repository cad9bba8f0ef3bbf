package model

type Role string

const (
	RoleDispatcher   Role = "Dispatcher"
	RoleZoneLead     Role = "Zone lead"
	RoleRegionalLead Role = "Regional lead"
	RoleVolunteer    Role = "Field volunteer"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleDispatcher, RoleZoneLead, RoleRegionalLead, RoleVolunteer:
		return true
	}
	return false
}

// ConfirmedAssignment is a single volunteer's confirmed participation in a
// shift.
type ConfirmedAssignment struct {
	VolunteerID string
	Role        Role // empty if the volunteer signed up without a role
	IsLead      bool
}

// RoleRequirement is a configured per-shift staffing requirement for one
// role. MaxAllowed is nil when the role has no upper bound.
type RoleRequirement struct {
	Role        Role
	MinRequired int
	MaxAllowed  *int
}

// Shift is a snapshot of one shift with its confirmed assignments.
type Shift struct {
	ID            string
	Zone          string
	Date          string // Date format
	MinVolunteers int
	Requirements  []RoleRequirement
	Assignments   []ConfirmedAssignment
}

// DispatcherAssignment is a confirmed dispatcher slot for a county on a date.
type DispatcherAssignment struct {
	ID          string
	County      string
	Date        string // Date format
	TimeBlock   string
	IsBackup    bool
	VolunteerID string
}

// RegionalLeadAssignment is a confirmed regional-lead slot for a date.
type RegionalLeadAssignment struct {
	ID          string
	Date        string // Date format
	IsPrimary   bool
	VolunteerID string
}
