package repository

import (
	"context"
	"fmt"

	"github.com/rcallahan/permitsync/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository wires a project repository backed by pgxpool.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

func (r *projectRepository) UpsertFromSheet(ctx context.Context, project domain.Project, clientID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(
		ctx,
		`INSERT INTO projects (sheet_id, client_id, name, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (sheet_id) DO UPDATE
		 SET client_id = EXCLUDED.client_id,
		     name = EXCLUDED.name,
		     status = EXCLUDED.status,
		     updated_at = now()
		 RETURNING id`,
		project.SheetID,
		clientID,
		project.Name,
		project.Status,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert project %s: %w", project.SheetID, err)
	}
	return id, nil
}

func (r *projectRepository) SheetIDs(ctx context.Context) (map[string]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT sheet_id, id FROM projects`)
	if err != nil {
		return nil, fmt.Errorf("failed to query project sheet ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]uuid.UUID)
	for rows.Next() {
		var sheetID string
		var id uuid.UUID
		if err := rows.Scan(&sheetID, &id); err != nil {
			return nil, fmt.Errorf("failed to scan project sheet id: %w", err)
		}
		ids[sheetID] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate project sheet ids: %w", err)
	}
	return ids, nil
}
