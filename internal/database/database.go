// Package database owns the connection pool, schema migrations and the SQL
// query templates used by the repositories.
package database

import (
	"context"
	"fmt"
	"time"

	"catalog-manager/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// driverNames maps configured drivers to registered database/sql driver names
var driverNames = map[string]string{
	config.DriverPostgres: "pgx",
	config.DriverSQLite:   "sqlite",
}

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know about
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Service wraps the connection pool of the catalog store
type Service struct {
	db     *sqlx.DB
	driver string
}

// New opens a pool for cfg and verifies it with a ping
func New(ctx context.Context, cfg config.DatabaseConfig) (*Service, error) {
	driverName, ok := driverNames[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := sqlx.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// sqlite serializes writers anyway; one connection keeps pragmas consistent
		db.SetMaxOpenConns(1)
	} else if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
		db.SetMaxIdleConns(cfg.MaxConns / 2)
	}
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Service{db: db, driver: cfg.Driver}, nil
}

// DB returns the underlying pool
func (s *Service) DB() *sqlx.DB {
	return s.db
}

// Driver returns the configured driver name
func (s *Service) Driver() string {
	return s.driver
}

// Health reports pool statistics
func (s *Service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	stats := map[string]string{"driver": s.driver}
	if err := s.db.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	dbStats := s.db.Stats()
	stats["status"] = "up"
	stats["open_connections"] = fmt.Sprint(dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprint(dbStats.InUse)
	stats["idle"] = fmt.Sprint(dbStats.Idle)
	return stats
}

// Close closes the pool
func (s *Service) Close(logger *zap.Logger) error {
	logger.Info("Closing database connection", zap.String("driver", s.driver))
	return s.db.Close()
}
