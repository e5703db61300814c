package database

import (
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sync"

	"catalog-manager/internal/config"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations
var embedMigrations embed.FS

var gooseDialects = map[string]string{
	config.DriverPostgres: "postgres",
	config.DriverSQLite:   "sqlite3",
}

// goose keeps its base FS and dialect in package globals
var gooseMu sync.Mutex

// MigrationsDir returns the embedded migrations directory of a driver
func MigrationsDir(driver string) string {
	return path.Join("migrations", driver)
}

// RunMigrations executes all pending database migrations for driver
func RunMigrations(db *sql.DB, driver string, logger *zap.Logger) error {
	dialect, ok := gooseDialects[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(zap.NewStdLog(logger.Named("goose")))

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	dir := MigrationsDir(driver)
	logger.Info("Checking for pending migrations...", zap.String("dir", dir))

	if err := goose.Up(db, dir); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations completed successfully")
	return nil
}

// GetMigrationStatus prints the current migration status
func GetMigrationStatus(db *sql.DB, driver string) error {
	dialect, ok := gooseDialects[driver]
	if !ok {
		return fmt.Errorf("no migrations for driver %q", driver)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.Status(db, MigrationsDir(driver))
}
