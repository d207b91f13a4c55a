package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"club-finance-backend/internal/logger"
)

// MigrationDirection selects how RunMigrations moves the schema.
type MigrationDirection string

const (
	MigrateUp   MigrationDirection = "up"
	MigrateDown MigrationDirection = "down"
)

func sourceURL(migrationsPath string) (string, error) {
	abs, err := filepath.Abs(migrationsPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve migrations path: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// RunMigrations applies (or reverts) every migration under migrationsPath.
// A database already at the target version is not an error.
func RunMigrations(db *sql.DB, migrationsPath, dbName string, direction MigrationDirection) error {
	src, err := sourceURL(migrationsPath)
	if err != nil {
		return err
	}

	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{
		DatabaseName: dbName,
		SchemaName:   "public",
	})
	if err != nil {
		logger.Error("Failed to create migration driver", "error", err)
		return fmt.Errorf("failed to create postgres driver instance: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(src, dbName, driver)
	if err != nil {
		logger.Error("Failed to load migrations", "source", src, "error", err)
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	switch direction {
	case MigrateUp:
		err = m.Up()
	case MigrateDown:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}

	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("No new migrations found. Skipping...")
			return nil
		}
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("No migration files found. Skipping migration step...", "source", src)
			return nil
		}
		var dirtyErr migrate.ErrDirty
		if errors.As(err, &dirtyErr) {
			logger.Error("Migration left a dirty version", "version", dirtyErr.Version)
			return fmt.Errorf("migration failed: dirty database version %d", dirtyErr.Version)
		}
		logger.Error("Migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, verr := m.Version()
	if verr == nil {
		logger.Info("Migrations applied", "direction", direction, "version", version, "dirty", dirty)
	}
	return nil
}
