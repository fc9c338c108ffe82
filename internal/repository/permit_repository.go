package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/rcallahan/permitsync/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TxRunner executes a function inside a database transaction, committing on
// nil return and rolling back otherwise. *db.Connection satisfies it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(pgx.Tx) error) error
}

type permitRepository struct {
	tx TxRunner
}

// NewPermitRepository wires a permit repository that runs its upserts through
// the given transaction runner.
func NewPermitRepository(tx TxRunner) PermitRepository {
	return &permitRepository{tx: tx}
}

// UpsertFromSheet inserts or updates the permit and, when the stored status
// changes, appends a permit_status_history row in the same transaction.
func (r *permitRepository) UpsertFromSheet(ctx context.Context, permit domain.Permit, projectID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.tx.WithTx(ctx, func(tx pgx.Tx) error {
		var previousStatus string
		existing := true
		err := tx.QueryRow(ctx, `SELECT status FROM permits WHERE sheet_id = $1`, permit.SheetID).Scan(&previousStatus)
		if err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("failed to load permit %s: %w", permit.SheetID, err)
			}
			existing = false
		}

		err = tx.QueryRow(
			ctx,
			`INSERT INTO permits (sheet_id, project_id, permit_number, status, approved_by, approved_at)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (sheet_id) DO UPDATE
			 SET project_id = EXCLUDED.project_id,
			     permit_number = EXCLUDED.permit_number,
			     status = EXCLUDED.status,
			     approved_by = EXCLUDED.approved_by,
			     approved_at = EXCLUDED.approved_at,
			     updated_at = now()
			 RETURNING id`,
			permit.SheetID,
			projectID,
			permit.PermitNumber,
			permit.Status,
			permit.ApprovedBy,
			permit.ApprovedAt,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to upsert permit %s: %w", permit.SheetID, err)
		}

		if existing && previousStatus != permit.Status {
			_, err = tx.Exec(
				ctx,
				`INSERT INTO permit_status_history (permit_id, old_status, new_status)
				 VALUES ($1, $2, $3)`,
				id,
				previousStatus,
				permit.Status,
			)
			if err != nil {
				return fmt.Errorf("failed to record permit status change for %s: %w", permit.SheetID, err)
			}
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
