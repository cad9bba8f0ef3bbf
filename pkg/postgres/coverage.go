package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sarahbetts/fieldrota/pkg/db"
)

// GetCoverageState retrieves the stored coverage state for a shift.
// Returns (nil, nil) when the shift has no stored state yet.
func (d *DB) GetCoverageState(ctx context.Context, shiftID string) (*db.CoverageState, error) {
	var s db.CoverageState
	err := d.pool.QueryRow(ctx, `
		SELECT shift_id, has_exception, notes, status, reviewed_by, reviewed_at, updated_at
		FROM coverage_state
		WHERE shift_id = $1
	`, shiftID).Scan(&s.ShiftID, &s.HasException, &s.Notes, &s.Status, &s.ReviewedBy, &s.ReviewedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query coverage state: %w", err)
	}
	return &s, nil
}

// UpsertCoverageState inserts or replaces the coverage state for a shift
func (d *DB) UpsertCoverageState(ctx context.Context, state *db.CoverageState) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO coverage_state (shift_id, has_exception, notes, status, reviewed_by, reviewed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (shift_id) DO UPDATE SET
			has_exception = EXCLUDED.has_exception,
			notes = EXCLUDED.notes,
			status = EXCLUDED.status,
			reviewed_by = EXCLUDED.reviewed_by,
			reviewed_at = EXCLUDED.reviewed_at,
			updated_at = NOW()
	`, state.ShiftID, state.HasException, state.Notes, state.Status, state.ReviewedBy, state.ReviewedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert coverage state: %w", err)
	}
	return nil
}
