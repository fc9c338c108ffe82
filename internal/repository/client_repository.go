package repository

import (
	"context"
	"fmt"

	"github.com/rcallahan/permitsync/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository wires a client repository backed by pgxpool.
func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{pool: pool}
}

func (r *clientRepository) UpsertFromSheet(ctx context.Context, client domain.Client) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(
		ctx,
		`INSERT INTO clients (sheet_id, full_name, email, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (sheet_id) DO UPDATE
		 SET full_name = EXCLUDED.full_name,
		     email = EXCLUDED.email,
		     status = EXCLUDED.status,
		     updated_at = now()
		 RETURNING id`,
		client.SheetID,
		client.FullName,
		client.Email,
		string(client.Status),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert client %s: %w", client.SheetID, err)
	}
	return id, nil
}

func (r *clientRepository) SheetIDs(ctx context.Context) (map[string]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `SELECT sheet_id, id FROM clients`)
	if err != nil {
		return nil, fmt.Errorf("failed to query client sheet ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]uuid.UUID)
	for rows.Next() {
		var sheetID string
		var id uuid.UUID
		if err := rows.Scan(&sheetID, &id); err != nil {
			return nil, fmt.Errorf("failed to scan client sheet id: %w", err)
		}
		ids[sheetID] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate client sheet ids: %w", err)
	}
	return ids, nil
}
