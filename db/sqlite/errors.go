package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/GeneralBots/botlib/boterr"
	"github.com/GeneralBots/botlib/capability"
)

func init() {
	capability.Register(capability.Database)
}

// Error is a SQLite failure carrying the driver result code. It satisfies
// errors.Is against boterr.ErrDatabase so callers can classify it without
// importing this package.
type Error struct {
	// Op names the failing operation ("open", "exec", "tx").
	Op string
	// Code is the SQLite result code, extended form when available.
	Code int
	// Err is the native driver error, never nil.
	Err error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("sqlite %s: code %d: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("sqlite %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == boterr.ErrDatabase
}

// WrapErr converts a raw driver error into the library's error taxonomy.
// Row misses map to not-found, constraint violations to conflict, lock
// contention to timeout; everything else becomes a *Error.
func WrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return boterr.MarkKind(fmt.Errorf("sqlite %s: %w", op, err), boterr.KindNotFound)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("sqlite %s: %w", op, err)
	}

	var serr *msqlite.Error
	if errors.As(err, &serr) {
		code := serr.Code()
		switch {
		case code&0xff == sqlite3.SQLITE_CONSTRAINT:
			return boterr.MarkKind(fmt.Errorf("sqlite %s: %w", op, err), boterr.KindConflict)
		case code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED:
			return boterr.MarkKind(fmt.Errorf("sqlite %s: %w", op, err), boterr.KindTimeout)
		}
		return &Error{Op: op, Code: code, Err: err}
	}

	return &Error{Op: op, Err: err}
}
