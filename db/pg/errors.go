package pg

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/GeneralBots/botlib/boterr"
	"github.com/GeneralBots/botlib/capability"
)

func init() {
	capability.Register(capability.Database)
}

// Error is the PostgreSQL variant of the unified error taxonomy, present
// only in builds that compile the database capability. The native pgx
// error stays reachable through errors.Unwrap and boterr.Cause.
type Error struct {
	// Op names the failed operation, e.g. "query" or "migrate".
	Op string
	// Code is the SQLSTATE code when the server reported one.
	Code string
	// Err is the underlying pgx/pgconn error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("pg %s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("pg %s: %v", e.Op, e.Err)
}

// Unwrap exposes the native cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is folds the error into the unified taxonomy as a database failure.
func (e *Error) Is(target error) bool {
	return target == boterr.ErrDatabase
}

// SQLSTATE class and code prefixes used by WrapErr.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	classIntegrity          = "23"
)

// WrapErr converts a native pgx error into the taxonomy at the point of
// propagation. Row absence becomes a not-found error, integrity
// violations become conflicts, everything else a *pg.Error carrying the
// SQLSTATE. Nil stays nil.
func WrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return boterr.MarkKind(err, boterr.KindNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation,
			pgErr.Code == codeForeignKeyViolation,
			len(pgErr.Code) >= 2 && pgErr.Code[:2] == classIntegrity:
			return boterr.MarkKind(err, boterr.KindConflict)
		}
		return &Error{Op: op, Code: pgErr.Code, Err: err}
	}
	return &Error{Op: op, Err: err}
}
