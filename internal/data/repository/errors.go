package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned by mutations whose target row does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry wraps unique constraint violations.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
	// ErrForeignKey wraps violations of a foreign key constraint.
	ErrForeignKey = errors.New("repository: referenced record does not exist")
)

// mapPgError converts constraint violations into the repository sentinels,
// keeping the constraint name for logs.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, pgErr.ConstraintName)
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: %s", ErrForeignKey, pgErr.ConstraintName)
	default:
		return err
	}
}
