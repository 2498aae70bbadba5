package pg

import (
	"errors"
	"io/fs"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/GeneralBots/botlib/boterr"
)

// MigrationInfo reports the outcome of a migration run.
type MigrationInfo struct {
	// Applied is true when at least one new migration ran.
	Applied bool
	// CurrentVersion is the schema version before the run.
	CurrentVersion uint
	// FinalVersion is the schema version after the run.
	FinalVersion uint
	// Dirty marks a schema left mid-migration by an earlier failure.
	Dirty bool
}

// ApplyMigrations applies all pending migrations from the source path
// (e.g. "file://migrations"). Re-running with nothing pending is not an
// error.
func ApplyMigrations(dsn, migrationsPath string) (MigrationInfo, error) {
	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		return MigrationInfo{}, WrapErr("migrate", err)
	}
	defer closeMigrate(m)
	return run(m)
}

// ApplyMigrationsFromFS applies migrations embedded in an fs.FS, typically
// an embed.FS compiled into the consumer binary.
func ApplyMigrationsFromFS(dsn string, fsys fs.FS, dirName string) (MigrationInfo, error) {
	src, err := iofs.New(fsys, dirName)
	if err != nil {
		return MigrationInfo{}, WrapErr("migrate", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return MigrationInfo{}, WrapErr("migrate", err)
	}
	defer closeMigrate(m)
	return run(m)
}

// MigrationVersion returns the current schema version and dirty flag.
// A database without applied migrations reports version 0.
func MigrationVersion(dsn, migrationsPath string) (uint, bool, error) {
	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		return 0, false, WrapErr("migrate", err)
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

func run(m *migrate.Migrate) (MigrationInfo, error) {
	info := MigrationInfo{}

	current, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return MigrationInfo{}, WrapErr("migrate", err)
	}
	info.CurrentVersion = current
	info.Dirty = dirty
	if dirty {
		return info, boterr.Wrapf(boterr.ErrDatabase, "schema dirty at version %d", current)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			info.FinalVersion = current
			return info, nil
		}
		return info, WrapErr("migrate", err)
	}
	info.Applied = true
	if final, _, err := m.Version(); err == nil {
		info.FinalVersion = final
	}
	return info, nil
}

func closeMigrate(m *migrate.Migrate) {
	sourceErr, dbErr := m.Close()
	_, _ = sourceErr, dbErr
}
