package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"simplebanking/internal/config"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationsEnabled reports whether SQL migrations should run instead of the
// GORM AutoMigrate fallback.
func MigrationsEnabled() bool {
	return os.Getenv("AUTO_MIGRATE") == "true"
}

// RunMigrations applies all pending embedded migrations to the database.
func RunMigrations(db *sql.DB, driverName string) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}

	var driver migratedb.Driver
	switch driverName {
	case config.DriverPostgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	case config.DriverSQLite:
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	default:
		return fmt.Errorf("unsupported driver for migrations: %s", driverName)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s migration driver: %w", driverName, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driverName, driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		log.Printf("Warning: database is in dirty state at version %d, forcing version", version)
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	if err == migrate.ErrNoChange {
		log.Println("No new migrations to apply")
	} else {
		newVersion, _, err := m.Version()
		if err != nil {
			return fmt.Errorf("failed to get new migration version: %w", err)
		}
		log.Printf("Successfully applied migrations. New version: %d", newVersion)
	}

	return nil
}
