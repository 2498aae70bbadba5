// Package sqlite is the embedded-database integration. Importing it enables
// the database capability and pulls in the pure-Go SQLite driver.
//
// Open handles return *sql.DB configured with pragmas suited for a single
// writer: WAL journaling, foreign key enforcement and a busy timeout. Errors
// from every operation fold into the library taxonomy via WrapErr.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// AccessMode selects how the database file is opened.
type AccessMode string

const (
	AccessReadWrite       AccessMode = "rw"
	AccessReadOnly        AccessMode = "ro"
	AccessReadWriteCreate AccessMode = "rwc"
)

// Options configures the connection pool and per-connection pragmas.
type Options struct {
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	PingTimeout     time.Duration

	// WALMode switches journaling to write-ahead logging.
	WALMode bool
	// ForeignKeys turns on referential integrity checks.
	ForeignKeys bool
	// BusyTimeout is how long a statement waits on a locked database.
	BusyTimeout time.Duration
	AccessMode  AccessMode
}

// DefaultOptions returns settings tuned for embedded use: a small pool,
// WAL journaling and foreign keys on.
func DefaultOptions() Options {
	return Options{
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 10 * time.Minute,
		MaxOpenConns:    4,
		MaxIdleConns:    1,
		PingTimeout:     5 * time.Second,
		WALMode:         true,
		ForeignKeys:     true,
		BusyTimeout:     5 * time.Second,
		AccessMode:      AccessReadWrite,
	}
}

// Open opens the database at path with DefaultOptions, creating the file
// and its parent directory as needed.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	return OpenWithOptions(ctx, path, DefaultOptions())
}

// OpenReadOnly opens an existing database without write access.
func OpenReadOnly(ctx context.Context, path string) (*sql.DB, error) {
	opts := DefaultOptions()
	opts.AccessMode = AccessReadOnly
	return OpenWithOptions(ctx, path, opts)
}

// OpenWithOptions opens the database at path, verifies the connection and
// applies pragma settings.
func OpenWithOptions(ctx context.Context, path string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, WrapErr("open", fmt.Errorf("database path is empty"))
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, WrapErr("open", err)
			}
		}
	}

	db, err := sql.Open("sqlite", buildDSN(path, opts))
	if err != nil {
		return nil, WrapErr("open", err)
	}
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)

	pingCtx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, WrapErr("ping", err)
	}

	if err := applyPragmas(ctx, db, opts); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// OpenInMemory opens a fresh in-memory database. The pool is pinned to a
// single connection so every statement sees the same schema.
func OpenInMemory(ctx context.Context) (*sql.DB, error) {
	opts := DefaultOptions()
	opts.WALMode = false
	opts.MaxOpenConns = 1
	opts.MaxIdleConns = 1
	return OpenWithOptions(ctx, ":memory:", opts)
}

// OpenTestDB creates a throwaway database file in the system temp directory
// and opens it. Pair with CleanupTestDB.
func OpenTestDB(ctx context.Context) (*sql.DB, string, error) {
	tmp, err := os.CreateTemp("", "botlib_test_*.sqlite")
	if err != nil {
		return nil, "", WrapErr("open", err)
	}
	path := tmp.Name()
	_ = tmp.Close()

	db, err := Open(ctx, path)
	if err != nil {
		_ = os.Remove(path)
		return nil, "", err
	}
	return db, path, nil
}

// CleanupTestDB closes the handle and removes the database file.
func CleanupTestDB(db *sql.DB, path string) error {
	if db != nil {
		_ = db.Close()
	}
	if path != "" && path != ":memory:" {
		return os.Remove(path)
	}
	return nil
}

func buildDSN(path string, opts Options) string {
	params := []string{}
	if opts.AccessMode != "" && opts.AccessMode != AccessReadWrite {
		params = append(params, fmt.Sprintf("mode=%s", opts.AccessMode))
	}
	if opts.BusyTimeout > 0 {
		params = append(params, fmt.Sprintf("_busy_timeout=%d", opts.BusyTimeout.Milliseconds()))
	}
	if len(params) > 0 {
		return path + "?" + strings.Join(params, "&")
	}
	return path
}

func applyPragmas(ctx context.Context, db *sql.DB, opts Options) error {
	pragmas := make([]string, 0, 4)
	if opts.ForeignKeys {
		pragmas = append(pragmas, "PRAGMA foreign_keys = ON")
	}
	if opts.WALMode {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	pragmas = append(pragmas, "PRAGMA synchronous = NORMAL")
	if opts.BusyTimeout > 0 {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA busy_timeout = %d", opts.BusyTimeout.Milliseconds()))
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return WrapErr("pragma", err)
		}
	}
	return nil
}
