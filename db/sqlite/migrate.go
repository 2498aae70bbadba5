package sqlite

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// BuildMigrateURL turns a database file path into a migrate-compatible URL.
// Windows drive paths ("C:\db") become "sqlite:///C:/db", Unix paths
// "sqlite:///path".
func BuildMigrateURL(dbPath string) (string, error) {
	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return "", WrapErr("migrate", err)
	}

	urlPath := filepath.ToSlash(absPath)
	if runtime.GOOS == "windows" && len(urlPath) >= 2 && urlPath[1] == ':' {
		urlPath = "/" + urlPath
	}
	if !strings.HasPrefix(urlPath, "/") {
		urlPath = "/" + urlPath
	}
	return "sqlite://" + urlPath, nil
}

// ApplyMigrations applies all pending migrations from the source path
// (e.g. "file://migrations/sqlite"). A database that is already up to date
// is not an error.
func ApplyMigrations(dbPath, migrationsPath string) error {
	m, err := newMigrate(dbPath, migrationsPath)
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return WrapErr("migrate", err)
	}
	return nil
}

// MigrationVersion returns the applied schema version and dirty flag.
// A database without migrations reports version 0.
func MigrationVersion(dbPath, migrationsPath string) (uint, bool, error) {
	m, err := newMigrate(dbPath, migrationsPath)
	if err != nil {
		return 0, false, err
	}
	defer closeMigrate(m)

	version, dirty, err := m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, WrapErr("migrate", err)
	}
	return version, dirty, nil
}

// DowngradeTo rolls the schema back to the given version.
func DowngradeTo(dbPath, migrationsPath string, version uint) error {
	m, err := newMigrate(dbPath, migrationsPath)
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Migrate(version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return WrapErr("migrate", fmt.Errorf("downgrade to %d: %w", version, err))
	}
	return nil
}

func newMigrate(dbPath, migrationsPath string) (*migrate.Migrate, error) {
	databaseURL, err := BuildMigrateURL(dbPath)
	if err != nil {
		return nil, err
	}
	m, err := migrate.New(migrationsPath, databaseURL)
	if err != nil {
		return nil, WrapErr("migrate", err)
	}
	return m, nil
}

func closeMigrate(m *migrate.Migrate) {
	_, _ = m.Close()
}
