package db

import "time"

// Shift represents a database shift record
type Shift struct {
	ID            string
	Zone          string
	Date          string // Date format
	MinVolunteers int
}

// ShiftRequirement represents a configured per-role staffing requirement
// for a shift. Position preserves the configured ordering, which the
// coverage evaluator depends on.
type ShiftRequirement struct {
	ID          string
	ShiftID     string
	Role        string
	MinRequired int
	MaxAllowed  *int
	Position    int
}

// ShiftAssignment represents a volunteer's confirmed assignment to a shift
type ShiftAssignment struct {
	ID          string
	ShiftID     string
	VolunteerID string
	Role        string // empty if no role
	IsLead      bool
}

// DispatcherAssignment represents a confirmed dispatcher slot
type DispatcherAssignment struct {
	ID          string
	County      string
	Date        string // Date format
	TimeBlock   string
	IsBackup    bool
	VolunteerID string
}

// RegionalLeadAssignment represents a confirmed regional-lead slot
type RegionalLeadAssignment struct {
	ID          string
	Date        string // Date format
	IsPrimary   bool
	VolunteerID string
}

// CoverageState represents the persisted exception review state of a shift.
// ReviewedBy and ReviewedAt are set only when Status is "reviewed".
type CoverageState struct {
	ShiftID      string
	HasException bool
	Notes        []string
	Status       string
	ReviewedBy   *string
	ReviewedAt   *time.Time
	UpdatedAt    time.Time
}
