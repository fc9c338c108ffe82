package repository

import (
	"context"

	"github.com/rcallahan/permitsync/internal/domain"

	"github.com/google/uuid"
)

// ClientRepository persists clients keyed by their sheet identifier.
type ClientRepository interface {
	// UpsertFromSheet inserts or updates the client by sheet_id and returns
	// the assigned primary identifier.
	UpsertFromSheet(ctx context.Context, client domain.Client) (uuid.UUID, error)
	// SheetIDs returns every sheet identifier currently present in the store,
	// mapped to its primary identifier. Used for referential checks before
	// child rows are written.
	SheetIDs(ctx context.Context) (map[string]uuid.UUID, error)
}

// ProjectRepository persists projects. The owning client must already exist;
// its primary identifier is passed in after the caller resolves the reference.
type ProjectRepository interface {
	UpsertFromSheet(ctx context.Context, project domain.Project, clientID uuid.UUID) (uuid.UUID, error)
	SheetIDs(ctx context.Context) (map[string]uuid.UUID, error)
}

// PermitRepository persists permits and their status-change history.
type PermitRepository interface {
	UpsertFromSheet(ctx context.Context, permit domain.Permit, projectID uuid.UUID) (uuid.UUID, error)
}

// PaymentRepository persists payments. ClientID is optional because older
// sheet rows only reference the project.
type PaymentRepository interface {
	UpsertFromSheet(ctx context.Context, payment domain.Payment, projectID uuid.UUID, clientID *uuid.UUID) (uuid.UUID, error)
}

// MigrationLogRepository records row level migration failures for later
// reconciliation.
type MigrationLogRepository interface {
	Record(ctx context.Context, entry domain.MigrationLogEntry) error
	List(ctx context.Context, entity string, limit int, offset int) ([]domain.MigrationLogEntry, error)
}
