package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrationDSN builds the database URL golang-migrate expects for
// MySQL. The credentials mirror those used by Open.
func MigrationDSN(user, pass, host, port, name string) string {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	return fmt.Sprintf("mysql://%s@tcp(%s:%s)/%s", auth, host, port, name)
}

// sourceURL normalizes a migrations location into the source URL
// golang-migrate expects. A plain directory path like "migrations"
// gets the file:// scheme prepended; anything already carrying a
// scheme passes through unchanged.
func sourceURL(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	return "file://" + path
}

// Migrate applies all pending up migrations from the given source,
// either a directory path ("migrations") or a full source URL
// ("file://migrations"). An already up-to-date schema is not an
// error.
func Migrate(sourcePath, dsn string) error {
	m, err := migrate.New(sourceURL(sourcePath), dsn)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return err
	}
	return nil
}

// MigrateDown rolls back every migration. Used by cmd/migrate only.
func MigrateDown(sourcePath, dsn string) error {
	m, err := migrate.New(sourceURL(sourcePath), dsn)
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return err
	}
	return nil
}
