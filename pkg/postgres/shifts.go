package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sarahbetts/fieldrota/pkg/db"
)

// GetShift retrieves a single shift record by ID
func (d *DB) GetShift(ctx context.Context, id string) (*db.Shift, error) {
	var s db.Shift
	err := d.pool.QueryRow(ctx, `
		SELECT id, zone, shift_date::text, min_volunteers
		FROM shift
		WHERE id = $1
	`, id).Scan(&s.ID, &s.Zone, &s.Date, &s.MinVolunteers)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query shift: %w", err)
	}
	return &s, nil
}

// GetShiftRequirements retrieves a shift's role requirements in configured order
func (d *DB) GetShiftRequirements(ctx context.Context, shiftID string) ([]db.ShiftRequirement, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, shift_id, role, min_required, max_allowed, position
		FROM shift_requirement
		WHERE shift_id = $1
		ORDER BY position
	`, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift requirements: %w", err)
	}
	defer rows.Close()

	var requirements []db.ShiftRequirement
	for rows.Next() {
		var r db.ShiftRequirement
		if err := rows.Scan(&r.ID, &r.ShiftID, &r.Role, &r.MinRequired, &r.MaxAllowed, &r.Position); err != nil {
			return nil, fmt.Errorf("failed to scan shift requirement: %w", err)
		}
		requirements = append(requirements, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift requirements: %w", err)
	}

	return requirements, nil
}

// GetShiftAssignments retrieves a shift's confirmed assignments
func (d *DB) GetShiftAssignments(ctx context.Context, shiftID string) ([]db.ShiftAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, shift_id, volunteer_id, role, is_lead
		FROM shift_assignment
		WHERE shift_id = $1
		ORDER BY id
	`, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift assignments: %w", err)
	}
	defer rows.Close()

	return scanAssignments(rows)
}

// InsertShifts inserts shift records and their requirements in one transaction
func (d *DB) InsertShifts(ctx context.Context, shifts []db.Shift, requirements []db.ShiftRequirement) error {
	if len(shifts) == 0 {
		return nil
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range shifts {
		_, err := tx.Exec(ctx, `
			INSERT INTO shift (id, zone, shift_date, min_volunteers)
			VALUES ($1, $2, $3::date, $4)
		`, s.ID, s.Zone, s.Date, s.MinVolunteers)
		if err != nil {
			return fmt.Errorf("failed to insert shift: %w", err)
		}
	}

	for _, r := range requirements {
		_, err := tx.Exec(ctx, `
			INSERT INTO shift_requirement (id, shift_id, role, min_required, max_allowed, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, r.ID, r.ShiftID, r.Role, r.MinRequired, r.MaxAllowed, r.Position)
		if err != nil {
			return fmt.Errorf("failed to insert shift requirement: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func scanAssignments(rows pgx.Rows) ([]db.ShiftAssignment, error) {
	var assignments []db.ShiftAssignment
	for rows.Next() {
		var a db.ShiftAssignment
		var role *string
		if err := rows.Scan(&a.ID, &a.ShiftID, &a.VolunteerID, &role, &a.IsLead); err != nil {
			return nil, fmt.Errorf("failed to scan shift assignment: %w", err)
		}
		if role != nil {
			a.Role = *role
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift assignments: %w", err)
	}

	return assignments, nil
}
