// Package migration drives the sheet-to-database conversion: one pass per
// entity, each pass reading the whole tab, validating rows, resolving parent
// references against the target store and upserting survivors.
//
// Passes must run in foreign-key order: clients before projects, projects
// before permits and payments. Running a child pass first makes every child
// row fail its reference check. Run enforces the order; the individual
// Migrate* methods leave it to the caller.
package migration

import (
	"context"
	"fmt"

	"github.com/rcallahan/permitsync/internal/domain"
	"github.com/rcallahan/permitsync/internal/repository"
	"github.com/rcallahan/permitsync/internal/sheets"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entity names used for stats buckets and migration log entries.
const (
	EntityClients  = "clients"
	EntityProjects = "projects"
	EntityPermits  = "permits"
	EntityPayments = "payments"
)

// Config wires the service's collaborators. All dependencies are explicit;
// nothing is read from process-wide state.
type Config struct {
	Source   sheets.Reader
	Clients  repository.ClientRepository
	Projects repository.ProjectRepository
	Permits  repository.PermitRepository
	Payments repository.PaymentRepository
	Logs     repository.MigrationLogRepository
	Logger   *zap.Logger

	// DryRun executes every read, validation and reference-resolution step
	// but lets no write of any kind reach the target store.
	DryRun bool
}

// Service converts sheet rows into relational rows entity by entity.
type Service struct {
	source   sheets.Reader
	clients  repository.ClientRepository
	projects repository.ProjectRepository
	permits  repository.PermitRepository
	payments repository.PaymentRepository
	logs     repository.MigrationLogRepository
	logger   *zap.Logger
	dryRun   bool
	stats    *Stats
}

// NewService creates a migration service. A nil logger is replaced with a
// no-op logger.
func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:   cfg.Source,
		clients:  cfg.Clients,
		projects: cfg.Projects,
		permits:  cfg.Permits,
		payments: cfg.Payments,
		logs:     cfg.Logs,
		logger:   logger,
		dryRun:   cfg.DryRun,
		stats:    NewStats(),
	}
}

// Stats exposes the accumulated counters. The report stays retrievable even
// after a fatal error aborts the run partway through.
func (s *Service) Stats() *Stats {
	return s.stats
}

// Run executes all passes in foreign-key order and stops at the first fatal
// error. Row-level problems never abort the run.
func (s *Service) Run(ctx context.Context) error {
	if err := s.MigrateClients(ctx); err != nil {
		return err
	}
	if err := s.MigrateProjects(ctx); err != nil {
		return err
	}
	if err := s.MigratePermits(ctx); err != nil {
		return err
	}
	return s.MigratePayments(ctx)
}

// MigrateClients migrates the Clients tab. A non-nil error means the pass
// could not run at all (source read failure); rows that fail validation or
// upsert are counted and the pass continues.
func (s *Service) MigrateClients(ctx context.Context) error {
	s.stats.AddEntity(EntityClients)

	rows, err := s.source.GetClientsData(ctx)
	if err != nil {
		return fmt.Errorf("failed to read clients tab: %w", err)
	}
	if err := s.stats.SetSheetCount(EntityClients, len(rows)); err != nil {
		return err
	}

	for idx, row := range rows {
		rowNumber := idx + 2 // row 1 is the header

		client, parseErr := domain.ParseClientRow(row)
		if parseErr != nil {
			s.recordSkip(ctx, EntityClients, row[domain.ColumnClientID], rowNumber, parseErr)
			continue
		}

		if !s.dryRun {
			if _, upsertErr := s.clients.UpsertFromSheet(ctx, client); upsertErr != nil {
				s.recordError(ctx, EntityClients, client.SheetID, rowNumber, upsertErr)
				continue
			}
		}
		s.recordSuccess(EntityClients, client.SheetID)
	}

	return nil
}

// MigrateProjects migrates the Projects tab. Requires MigrateClients to have
// completed: each project's client reference is resolved against the store
// and unresolved references are counted as errors, never written as orphans.
func (s *Service) MigrateProjects(ctx context.Context) error {
	s.stats.AddEntity(EntityProjects)

	rows, err := s.source.GetProjectsData(ctx)
	if err != nil {
		return fmt.Errorf("failed to read projects tab: %w", err)
	}
	if err := s.stats.SetSheetCount(EntityProjects, len(rows)); err != nil {
		return err
	}

	clientIDs, err := s.clients.SheetIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load client ids: %w", err)
	}

	for idx, row := range rows {
		rowNumber := idx + 2

		project, parseErr := domain.ParseProjectRow(row)
		if parseErr != nil {
			s.recordSkip(ctx, EntityProjects, row[domain.ColumnProjectID], rowNumber, parseErr)
			continue
		}

		clientID, ok := clientIDs[project.ClientSheetID]
		if !ok {
			s.recordError(ctx, EntityProjects, project.SheetID, rowNumber,
				fmt.Errorf("client %q not found in target store", project.ClientSheetID))
			continue
		}

		if !s.dryRun {
			if _, upsertErr := s.projects.UpsertFromSheet(ctx, project, clientID); upsertErr != nil {
				s.recordError(ctx, EntityProjects, project.SheetID, rowNumber, upsertErr)
				continue
			}
		}
		s.recordSuccess(EntityProjects, project.SheetID)
	}

	return nil
}

// MigratePermits migrates the Permits tab. Requires MigrateProjects to have
// completed.
func (s *Service) MigratePermits(ctx context.Context) error {
	s.stats.AddEntity(EntityPermits)

	rows, err := s.source.GetPermitsData(ctx)
	if err != nil {
		return fmt.Errorf("failed to read permits tab: %w", err)
	}
	if err := s.stats.SetSheetCount(EntityPermits, len(rows)); err != nil {
		return err
	}

	projectIDs, err := s.projects.SheetIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load project ids: %w", err)
	}

	for idx, row := range rows {
		rowNumber := idx + 2

		permit, parseErr := domain.ParsePermitRow(row)
		if parseErr != nil {
			s.recordSkip(ctx, EntityPermits, row[domain.ColumnPermitID], rowNumber, parseErr)
			continue
		}

		projectID, ok := projectIDs[permit.ProjectSheetID]
		if !ok {
			s.recordError(ctx, EntityPermits, permit.SheetID, rowNumber,
				fmt.Errorf("project %q not found in target store", permit.ProjectSheetID))
			continue
		}

		if !s.dryRun {
			if _, upsertErr := s.permits.UpsertFromSheet(ctx, permit, projectID); upsertErr != nil {
				s.recordError(ctx, EntityPermits, permit.SheetID, rowNumber, upsertErr)
				continue
			}
		}
		s.recordSuccess(EntityPermits, permit.SheetID)
	}

	return nil
}

// MigratePayments migrates the Payments tab. Requires MigrateClients and
// MigrateProjects to have completed. The client reference is optional in the
// sheet, but when present it must resolve.
func (s *Service) MigratePayments(ctx context.Context) error {
	s.stats.AddEntity(EntityPayments)

	rows, err := s.source.GetPaymentsData(ctx)
	if err != nil {
		return fmt.Errorf("failed to read payments tab: %w", err)
	}
	if err := s.stats.SetSheetCount(EntityPayments, len(rows)); err != nil {
		return err
	}

	projectIDs, err := s.projects.SheetIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load project ids: %w", err)
	}
	clientIDs, err := s.clients.SheetIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load client ids: %w", err)
	}

	for idx, row := range rows {
		rowNumber := idx + 2

		payment, parseErr := domain.ParsePaymentRow(row)
		if parseErr != nil {
			s.recordSkip(ctx, EntityPayments, row[domain.ColumnPaymentID], rowNumber, parseErr)
			continue
		}

		projectID, ok := projectIDs[payment.ProjectSheetID]
		if !ok {
			s.recordError(ctx, EntityPayments, payment.SheetID, rowNumber,
				fmt.Errorf("project %q not found in target store", payment.ProjectSheetID))
			continue
		}

		var clientID *uuid.UUID
		if payment.ClientSheetID != "" {
			id, ok := clientIDs[payment.ClientSheetID]
			if !ok {
				s.recordError(ctx, EntityPayments, payment.SheetID, rowNumber,
					fmt.Errorf("client %q not found in target store", payment.ClientSheetID))
				continue
			}
			clientID = &id
		}

		if !s.dryRun {
			if _, upsertErr := s.payments.UpsertFromSheet(ctx, payment, projectID, clientID); upsertErr != nil {
				s.recordError(ctx, EntityPayments, payment.SheetID, rowNumber, upsertErr)
				continue
			}
		}
		s.recordSuccess(EntityPayments, payment.SheetID)
	}

	return nil
}

func (s *Service) recordSuccess(entity, sheetID string) {
	if err := s.stats.RecordSuccess(entity); err != nil {
		s.logger.Error("stats bucket missing", zap.String("entity", entity), zap.Error(err))
		return
	}
	s.logger.Debug("row migrated", zap.String("entity", entity), zap.String("sheet_id", sheetID))
}

func (s *Service) recordSkip(ctx context.Context, entity, sheetID string, rowNumber int, cause error) {
	if err := s.stats.RecordSkip(entity); err != nil {
		s.logger.Error("stats bucket missing", zap.String("entity", entity), zap.Error(err))
		return
	}
	s.logger.Warn("row skipped",
		zap.String("entity", entity),
		zap.String("sheet_id", sheetID),
		zap.Int("row", rowNumber),
		zap.Error(cause))
	s.logRow(ctx, entity, sheetID, rowNumber, cause)
}

func (s *Service) recordError(ctx context.Context, entity, sheetID string, rowNumber int, cause error) {
	if err := s.stats.RecordError(entity); err != nil {
		s.logger.Error("stats bucket missing", zap.String("entity", entity), zap.Error(err))
		return
	}
	s.logger.Warn("row failed",
		zap.String("entity", entity),
		zap.String("sheet_id", sheetID),
		zap.Int("row", rowNumber),
		zap.Error(cause))
	s.logRow(ctx, entity, sheetID, rowNumber, cause)
}

// RowFailures reads back the row failures persisted during this run, for the
// operator to reconcile by hand after the report. Only entities that recorded
// errors or skips are queried; dry runs persist nothing and return nil.
func (s *Service) RowFailures(ctx context.Context) ([]domain.MigrationLogEntry, error) {
	if s.logs == nil || s.dryRun {
		return nil, nil
	}

	var failures []domain.MigrationLogEntry
	for _, name := range s.stats.order {
		entry := s.stats.entries[name]
		count := entry.Errors + entry.Skipped
		if count == 0 {
			continue
		}
		logs, err := s.logs.List(ctx, name, count, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s row failures: %w", name, err)
		}
		failures = append(failures, logs...)
	}
	return failures, nil
}

// logRow persists a row failure to the migration log. The log table lives in
// the target store, so dry runs leave it untouched.
func (s *Service) logRow(ctx context.Context, entity, sheetID string, rowNumber int, cause error) {
	if s.logs == nil || s.dryRun {
		return
	}
	entry := domain.MigrationLogEntry{
		Entity:       entity,
		SheetID:      sheetID,
		RowNumber:    rowNumber,
		ErrorMessage: cause.Error(),
	}
	if err := s.logs.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record migration log", zap.Error(err))
	}
}
