package postgresql

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func asPgError(err error, code string) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr, true
	}
	return nil, false
}

// isUniqueViolation reports a unique violation, optionally on a constraint
// whose name contains column.
func isUniqueViolation(err error, column string) bool {
	pgErr, ok := asPgError(err, pgUniqueViolation)
	if !ok {
		return false
	}
	return column == "" || strings.Contains(pgErr.ConstraintName, column)
}

func isForeignKeyViolation(err error, column string) bool {
	pgErr, ok := asPgError(err, pgForeignKeyViolation)
	if !ok {
		return false
	}
	return column == "" || strings.Contains(pgErr.ConstraintName, column)
}

// escapeLike makes % and _ match literally in a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
