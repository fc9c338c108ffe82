package domain

import (
	"time"

	"github.com/google/uuid"
)

// MigrationLogEntry captures row level issues that occur during a migration
// run, persisted so a partial run can be reconciled by hand afterwards.
type MigrationLogEntry struct {
	ID           uuid.UUID `json:"id"`
	Entity       string    `json:"entity"`
	SheetID      string    `json:"sheet_id"`
	RowNumber    int       `json:"row_number"`
	ErrorMessage string    `json:"error_message"`
	CreatedAt    time.Time `json:"created_at"`
}
