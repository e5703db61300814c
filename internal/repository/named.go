package repository

import (
	"context"
	"database/sql"
	"errors"

	"catalog-manager/internal/domain"

	"github.com/jmoiron/sqlx"
)

// Query templates use :name parameters; these helpers rebind them for the
// driver of db before running them.

func selectNamed(ctx context.Context, db *sqlx.DB, dest any, query string, arg any) error {
	bound, args, err := db.BindNamed(query, arg)
	if err != nil {
		return err
	}
	return db.SelectContext(ctx, dest, bound, args...)
}

// getNamed returns found=false instead of sql.ErrNoRows
func getNamed(ctx context.Context, db *sqlx.DB, dest any, query string, arg any) (bool, error) {
	bound, args, err := db.BindNamed(query, arg)
	if err != nil {
		return false, err
	}
	if err := db.GetContext(ctx, dest, bound, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// execNamed returns the number of affected rows
func execNamed(ctx context.Context, db *sqlx.DB, query string, arg any) (int64, error) {
	bound, args, err := db.BindNamed(query, arg)
	if err != nil {
		return 0, err
	}
	result, err := db.ExecContext(ctx, bound, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// nullableID maps an absent reference to SQL NULL
func nullableID(id *int) any {
	if id == nil {
		return nil
	}
	return *id
}

// dateArg binds dates as YYYY-MM-DD text, which both drivers compare and
// convert correctly
func dateArg(d domain.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}
