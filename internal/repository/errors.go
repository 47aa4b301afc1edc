package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned by mutations that matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// translateError maps driver errors onto the repository sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if constraint, ok := violation(err, uniqueViolation); ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, constraint)
	}
	// A missing parent row surfaces as a foreign key violation on insert.
	if constraint, ok := violation(err, foreignKeyViolation); ok {
		return fmt.Errorf("%w: %s", ErrNotFound, constraint)
	}
	return err
}

// violation reports whether err carries the given SQLSTATE from either the
// pgx driver or lib/pq, and which constraint was hit.
func violation(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr.ConstraintName, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == code {
		return pqErr.Constraint, true
	}
	return "", false
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

func rowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
