package config

import (
	"strings"

	"github.com/rcallahan/permitsync/internal/db"

	"github.com/spf13/viper"
)

// SheetsConfig selects the spreadsheet source for a run. When WorkbookPath is
// set the run reads an exported .xlsx snapshot instead of the live
// spreadsheet.
type SheetsConfig struct {
	SpreadsheetID   string
	CredentialsFile string
	WorkbookPath    string
}

// MigrationConfig holds run-level defaults; flags can override them.
type MigrationConfig struct {
	DryRun         bool
	MigrationsPath string
}

// Config is the full driver configuration. It is built here and passed into
// the driver explicitly; nothing else reads process-wide state.
type Config struct {
	Database  db.Config
	Sheets    SheetsConfig
	Migration MigrationConfig
}

// Load reads config.yaml from configPath, allowing environment overrides
// (PERMITSYNC_DATABASE_HOST and friends). A missing file is not an error;
// defaults plus environment are used.
func Load(configPath string) (Config, error) {
	cfg := Config{
		Database: db.DefaultConfig(),
		Migration: MigrationConfig{
			MigrationsPath: "./migrations",
		},
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv() // allow environment overrides
	v.SetEnvPrefix("PERMITSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Map nested keys to flat env vars
	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("sheets.spreadsheet_id")
	v.BindEnv("sheets.credentials_file")
	v.BindEnv("sheets.workbook_path")
	v.BindEnv("migration.dry_run")
	v.BindEnv("migration.migrations_path")

	// Config file not found? Use defaults + env.
	_ = v.ReadInConfig()

	// Override defaults if values exist
	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}
	if v.IsSet("sheets.spreadsheet_id") {
		cfg.Sheets.SpreadsheetID = v.GetString("sheets.spreadsheet_id")
	}
	if v.IsSet("sheets.credentials_file") {
		cfg.Sheets.CredentialsFile = v.GetString("sheets.credentials_file")
	}
	if v.IsSet("sheets.workbook_path") {
		cfg.Sheets.WorkbookPath = v.GetString("sheets.workbook_path")
	}
	if v.IsSet("migration.dry_run") {
		cfg.Migration.DryRun = v.GetBool("migration.dry_run")
	}
	if v.IsSet("migration.migrations_path") {
		cfg.Migration.MigrationsPath = v.GetString("migration.migrations_path")
	}

	return cfg, nil
}
