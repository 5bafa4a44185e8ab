// Package repository provides data access layer implementations for the engine.
package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the PostgreSQL error code for unique-constraint violations.
const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique-constraint violation.
// The database constraint is the enforcement of last resort for the
// one-edge-per-pair and one-pending-request-per-ordered-pair invariants when
// two writers race past the application-level checks.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// sqlite (used by the test databases) reports the same condition textually.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
