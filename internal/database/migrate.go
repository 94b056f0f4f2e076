package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/learnpath/schemas"
)

// Migrate applies all pending schema migrations for the database driver.
func Migrate(db *sqlx.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Default().Debug("Schema is up to date", "driver", db.DriverName())
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	slog.Default().Info("Applied schema migrations",
		"driver", db.DriverName(),
		"version", version,
		"dirty", dirty)
	return nil
}

func newMigrate(db *sqlx.DB) (*migrate.Migrate, error) {
	driverName := db.DriverName()
	source, err := iofs.New(schemas.Migrations, "migrations/"+driverName)
	if err != nil {
		return nil, fmt.Errorf("open migrations for %s: %w", driverName, err)
	}

	var m *migrate.Migrate
	switch driverName {
	case DriverMySQL:
		driver, err := migratemysql.WithInstance(db.DB, &migratemysql.Config{})
		if err != nil {
			return nil, fmt.Errorf("create mysql migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", source, DriverMySQL, driver)
		if err != nil {
			return nil, fmt.Errorf("create migrator: %w", err)
		}
	case DriverSQLite:
		driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
		if err != nil {
			return nil, fmt.Errorf("create sqlite migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", source, DriverSQLite, driver)
		if err != nil {
			return nil, fmt.Errorf("create migrator: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driverName)
	}
	return m, nil
}
