package repository

import (
	"context"
	"fmt"

	"github.com/rcallahan/permitsync/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type migrationLogRepository struct {
	pool *pgxpool.Pool
}

// NewMigrationLogRepository wires a repository backed by pgxpool.
func NewMigrationLogRepository(pool *pgxpool.Pool) MigrationLogRepository {
	return &migrationLogRepository{pool: pool}
}

func (r *migrationLogRepository) Record(ctx context.Context, entry domain.MigrationLogEntry) error {
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO migration_logs (entity, sheet_id, row_number, error_message)
		 VALUES ($1, $2, $3, $4)`,
		entry.Entity,
		entry.SheetID,
		entry.RowNumber,
		entry.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to record migration log: %w", err)
	}
	return nil
}

func (r *migrationLogRepository) List(ctx context.Context, entity string, limit int, offset int) ([]domain.MigrationLogEntry, error) {
	if limit <= 0 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(
		ctx,
		`SELECT id, entity, sheet_id, row_number, error_message, created_at
		 FROM migration_logs
		 WHERE entity = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		entity,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list migration logs: %w", err)
	}
	defer rows.Close()

	logs := []domain.MigrationLogEntry{}
	for rows.Next() {
		var (
			entry     domain.MigrationLogEntry
			createdAt pgtype.Timestamptz
		)
		if scanErr := rows.Scan(
			&entry.ID,
			&entry.Entity,
			&entry.SheetID,
			&entry.RowNumber,
			&entry.ErrorMessage,
			&createdAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan migration log: %w", scanErr)
		}
		if createdAt.Valid {
			entry.CreatedAt = createdAt.Time
		}
		logs = append(logs, entry)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate migration logs: %w", rowsErr)
	}

	return logs, nil
}
