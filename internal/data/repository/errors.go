package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned by writes that matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrReferenced is returned when a row is still referenced by another table.
	ErrReferenced = errors.New("record is still referenced")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("record already exists")
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// classify maps PostgreSQL constraint violations onto the package sentinels.
// The original error stays in the chain.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrReferenced, err)
	case pgUniqueViolation:
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	default:
		return err
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}
