package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rcallahan/permitsync/internal/config"
	"github.com/rcallahan/permitsync/internal/db"
	"github.com/rcallahan/permitsync/internal/migration"
	"github.com/rcallahan/permitsync/internal/repository"
	"github.com/rcallahan/permitsync/internal/sheets"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	dryRun := flag.Bool("dry-run", false, "validate and resolve references without writing to the database")
	workbook := flag.String("workbook", "", "read from an exported .xlsx workbook instead of Google Sheets")
	skipSchema := flag.Bool("skip-schema", false, "skip running schema migrations before the data migration")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), logger, *configPath, *dryRun, *workbook, *skipSchema); err != nil {
		logger.Error("migration run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *zap.Logger, configPath string, dryRun bool, workbook string, skipSchema bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dryRun {
		cfg.Migration.DryRun = true
	}
	if workbook != "" {
		cfg.Sheets.WorkbookPath = workbook
	}

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close()

	if !skipSchema {
		if err := db.RunMigrations(cfg.Database, cfg.Migration.MigrationsPath, logger); err != nil {
			return fmt.Errorf("failed to run schema migrations: %w", err)
		}
	}

	source, cleanup, err := newReader(ctx, cfg.Sheets)
	if err != nil {
		return fmt.Errorf("failed to open sheet source: %w", err)
	}
	defer cleanup()

	service := migration.NewService(migration.Config{
		Source:   source,
		Clients:  repository.NewClientRepository(conn.Pool),
		Projects: repository.NewProjectRepository(conn.Pool),
		Permits:  repository.NewPermitRepository(conn),
		Payments: repository.NewPaymentRepository(conn.Pool),
		Logs:     repository.NewMigrationLogRepository(conn.Pool),
		Logger:   logger,
		DryRun:   cfg.Migration.DryRun,
	})

	if cfg.Migration.DryRun {
		logger.Info("running in dry-run mode, no writes will reach the database")
	}

	runErr := service.Run(ctx)

	// Print the report even for a partially completed run.
	fmt.Println(service.Stats().Report())

	// Surface the persisted row failures so the operator can reconcile them.
	failures, failuresErr := service.RowFailures(ctx)
	if failuresErr != nil {
		logger.Warn("failed to load row failures", zap.Error(failuresErr))
	}
	for _, failure := range failures {
		logger.Warn("row requires manual reconciliation",
			zap.String("entity", failure.Entity),
			zap.String("sheet_id", failure.SheetID),
			zap.Int("row", failure.RowNumber),
			zap.String("reason", failure.ErrorMessage))
	}

	if runErr != nil {
		return runErr
	}
	logger.Info("migration run completed")
	return nil
}

func newReader(ctx context.Context, cfg config.SheetsConfig) (sheets.Reader, func(), error) {
	if cfg.WorkbookPath != "" {
		reader, err := sheets.NewWorkbookReader(cfg.WorkbookPath)
		if err != nil {
			return nil, nil, err
		}
		return reader, func() { _ = reader.Close() }, nil
	}

	reader, err := sheets.NewGoogleSheetsReader(ctx, cfg.SpreadsheetID, cfg.CredentialsFile)
	if err != nil {
		return nil, nil, err
	}
	return reader, func() {}, nil
}
