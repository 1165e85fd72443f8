package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"projecthub/internal/domain"
	"projecthub/internal/metrics"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// IsPgDuplicateError checks if error is a unique constraint violation
func IsPgDuplicateError(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError checks if error is a foreign key violation
func IsPgForeignKeyError(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}

// IsPgCheckViolation checks if error is a CHECK constraint violation
func IsPgCheckViolation(err error) bool {
	return pgErrorCode(err) == pgCheckViolation
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// constraintName returns the violated constraint, if the server reported one.
func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// checkViolationError turns a CHECK violation into a validation error. The
// service validates first, so reaching this means the two disagree.
func checkViolationError(err error) error {
	name := constraintName(err)
	if name == "" {
		name = "check constraint"
	}
	return &domain.ValidationError{Message: fmt.Sprintf("value rejected by %s", name)}
}

// observe records query latency and counts unexpected failures. Not-found,
// conflicts and constraint violations are expected outcomes and are not
// counted, whether still raw pgx errors or already translated.
func observe(operation, table string, start time.Time, err error) {
	metrics.RecordDBQueryDuration(operation, table, time.Since(start))
	if !isUnexpected(err) {
		return
	}
	metrics.RecordDBError(operation, table)
}

func isUnexpected(err error) bool {
	switch {
	case err == nil, IsPgNoRowsError(err):
		return false
	// Class 23 is integrity constraint violation
	case strings.HasPrefix(pgErrorCode(err), "23"):
		return false
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrValidation):
		return false
	}
	return true
}
