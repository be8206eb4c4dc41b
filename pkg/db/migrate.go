package db

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	schema "github.com/ppa-angola/portal-pedagogico/db"
)

// MigrationsPathEnv points at an on-disk migrations directory. When unset the
// migrations embedded in the binary are used.
const MigrationsPathEnv = "PPA_MIGRATIONS_PATH"

// NewMigrate returns a golang-migrate instance for the dialect of dbURL.
func NewMigrate(dbURL string) (*migrate.Migrate, error) {
	dialect, err := DialectOf(dbURL)
	if err != nil {
		return nil, err
	}

	if dir := os.Getenv(MigrationsPathEnv); dir != "" {
		path := filepath.Join(dir, string(dialect))
		return migrate.New("file://"+filepath.ToSlash(path), dbURL)
	}

	migrationsFS, err := fs.Sub(schema.Migrations, "migrations/"+string(dialect))
	if err != nil {
		return nil, fmt.Errorf("failed to get embedded migrations: %w", err)
	}

	d, err := iofs.New(migrationsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create iofs driver: %w", err)
	}

	return migrate.NewWithSourceInstance("iofs", d, dbURL)
}

// Migrate applies all pending migrations. It returns the resulting version
// and whether anything changed.
func Migrate(dbURL string) (uint, bool, error) {
	if err := ensureSQLiteDir(dbURL); err != nil {
		return 0, false, err
	}

	m, err := NewMigrate(dbURL)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			version, _, _ := m.Version()
			return version, false, nil
		}
		return 0, false, fmt.Errorf("migration failed: %w", err)
	}

	version, _, _ := m.Version()
	return version, true, nil
}

// Rollback reverts the given number of migrations.
func Rollback(dbURL string, steps int) (uint, error) {
	m, err := NewMigrate(dbURL)
	if err != nil {
		return 0, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Steps(-steps); err != nil {
		return 0, fmt.Errorf("rollback failed: %w", err)
	}

	version, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	return version, err
}

// Status reports the current schema version. ErrNilVersion is returned
// unchanged when no migration has been applied.
func Status(dbURL string) (uint, bool, error) {
	m, err := NewMigrate(dbURL)
	if err != nil {
		return 0, false, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	return m.Version()
}

func ensureSQLiteDir(dbURL string) error {
	if !strings.HasPrefix(dbURL, sqliteScheme) {
		return nil
	}
	dir := filepath.Dir(SQLitePath(dbURL))
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
