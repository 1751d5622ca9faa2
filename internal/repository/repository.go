// Package repository is the persistence layer: thin gorm adapters behind
// interfaces so services can be wired against fakes in tests.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/nvalenzuela/selekta/internal/apperr"
)

const pgUniqueViolation = "23505"

// wrapError translates storage errors into the shared taxonomy. Unique
// violations become Conflict so concurrent duplicate creates collapse
// onto the same path as a lookup hit.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", apperr.ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", apperr.ErrConflict, pgErr.ConstraintName)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", apperr.ErrTransient, err)
	}
	return err
}
