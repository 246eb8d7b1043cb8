package errors

// Postgres-specific mapping from pgx errors to project ErrorCode

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE 23505
const pgUniqueViolation = "23505"

// FromPG wraps a pgx error into a project error, tagging the operation.
// Unique violations map to Conflict, everything else to DB
func FromPG(err error, op string) error {
	if err == nil {
		return nil
	}
	code := ErrorCodeDB
	if isDuplicateKey(err) {
		code = ErrorCodeConflict
	}
	return WithOp(Wrapf(err, code, "pg"), op)
}

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return stderrs.As(Root(err), &pgErr) && pgErr.Code == pgUniqueViolation
}
