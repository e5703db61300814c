package repository

import (
	"errors"
	"fmt"

	"catalog-manager/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Postgres SQLSTATE codes of the integrity constraint violation class
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// isConstraintViolation reports whether the store rejected a statement
// because of a schema constraint
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgNotNullViolation, pgForeignKeyViolation, pgUniqueViolation, pgCheckViolation:
			return true
		}
		return false
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		// extended codes keep the primary code in the low byte
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}

	return false
}

// storeError classifies err as an integrity violation or a generic store
// failure, keeping message as the user facing text
func storeError(message, op string, err error) error {
	wrapped := fmt.Errorf("failed to %s: %w", op, err)
	if isConstraintViolation(err) {
		return domain.IntegrityViolation(message, wrapped)
	}
	return domain.StoreFailure(message, wrapped)
}
