package postgres

import (
	"context"
	"fmt"

	"github.com/sarahbetts/fieldrota/pkg/db"
)

// GetShiftsBetween retrieves shifts with from <= shift_date < to
func (d *DB) GetShiftsBetween(ctx context.Context, from, to string) ([]db.Shift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, zone, shift_date::text, min_volunteers
		FROM shift
		WHERE shift_date >= $1::date AND shift_date < $2::date
		ORDER BY shift_date, id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []db.Shift
	for rows.Next() {
		var s db.Shift
		if err := rows.Scan(&s.ID, &s.Zone, &s.Date, &s.MinVolunteers); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

// GetAssignmentsForShifts retrieves confirmed assignments for a set of shifts
func (d *DB) GetAssignmentsForShifts(ctx context.Context, shiftIDs []string) ([]db.ShiftAssignment, error) {
	if len(shiftIDs) == 0 {
		return nil, nil
	}

	rows, err := d.pool.Query(ctx, `
		SELECT id, shift_id, volunteer_id, role, is_lead
		FROM shift_assignment
		WHERE shift_id = ANY($1)
		ORDER BY shift_id, id
	`, shiftIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift assignments: %w", err)
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// GetDispatcherAssignmentsBetween retrieves dispatcher assignments with
// from <= shift_date < to
func (d *DB) GetDispatcherAssignmentsBetween(ctx context.Context, from, to string) ([]db.DispatcherAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, county, shift_date::text, time_block, is_backup, volunteer_id
		FROM dispatcher_assignment
		WHERE shift_date >= $1::date AND shift_date < $2::date
		ORDER BY shift_date, id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query dispatcher assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.DispatcherAssignment
	for rows.Next() {
		var a db.DispatcherAssignment
		if err := rows.Scan(&a.ID, &a.County, &a.Date, &a.TimeBlock, &a.IsBackup, &a.VolunteerID); err != nil {
			return nil, fmt.Errorf("failed to scan dispatcher assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dispatcher assignments: %w", err)
	}

	return assignments, nil
}

// GetRegionalLeadAssignmentsBetween retrieves regional-lead assignments with
// from <= shift_date < to
func (d *DB) GetRegionalLeadAssignmentsBetween(ctx context.Context, from, to string) ([]db.RegionalLeadAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, shift_date::text, is_primary, volunteer_id
		FROM regional_lead_assignment
		WHERE shift_date >= $1::date AND shift_date < $2::date
		ORDER BY shift_date, id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query regional lead assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.RegionalLeadAssignment
	for rows.Next() {
		var a db.RegionalLeadAssignment
		if err := rows.Scan(&a.ID, &a.Date, &a.IsPrimary, &a.VolunteerID); err != nil {
			return nil, fmt.Errorf("failed to scan regional lead assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating regional lead assignments: %w", err)
	}

	return assignments, nil
}
