package db

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ShiftStore defines the interface for shift database operations
type ShiftStore interface {
	GetShift(ctx context.Context, id string) (*Shift, error)
	GetShiftRequirements(ctx context.Context, shiftID string) ([]ShiftRequirement, error)
	GetShiftAssignments(ctx context.Context, shiftID string) ([]ShiftAssignment, error)
	InsertShifts(ctx context.Context, shifts []Shift, requirements []ShiftRequirement) error
}

// CoverageStore defines the interface for coverage state operations.
// GetCoverageState returns (nil, nil) for a shift with no stored state yet.
type CoverageStore interface {
	GetCoverageState(ctx context.Context, shiftID string) (*CoverageState, error)
	UpsertCoverageState(ctx context.Context, state *CoverageState) error
}

// WeekSnapshotStore defines the read interface the weekly digest is built
// from. Date bounds are Date-format strings; from is inclusive, to is
// exclusive.
type WeekSnapshotStore interface {
	GetShiftsBetween(ctx context.Context, from, to string) ([]Shift, error)
	GetAssignmentsForShifts(ctx context.Context, shiftIDs []string) ([]ShiftAssignment, error)
	GetDispatcherAssignmentsBetween(ctx context.Context, from, to string) ([]DispatcherAssignment, error)
	GetRegionalLeadAssignmentsBetween(ctx context.Context, from, to string) ([]RegionalLeadAssignment, error)
}

// Store combines all store interfaces implemented by the Postgres backend
type Store interface {
	ShiftStore
	CoverageStore
	WeekSnapshotStore
}
