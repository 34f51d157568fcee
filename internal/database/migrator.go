package database

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// Migrator applies the schema in the migrations directory.
type Migrator struct {
	migrate *migrate.Migrate
	logger  *zap.SugaredLogger
}

func NewMigrator(db *DB, migrationsPath string, logger *zap.SugaredLogger) (*Migrator, error) {
	if db == nil || db.pool == nil {
		return nil, errors.New("database pool not initialized")
	}

	if migrationsPath == "" {
		return nil, errors.New("migrations path is required")
	}

	if _, err := os.Stat(migrationsPath); err != nil {
		return nil, fmt.Errorf("migrations path validation failed: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(db.pool)

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{
		MigrationsTable: "schema_migrations",
	})
	if err != nil {
		_ = sqlDB.Close()

		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		_ = sqlDB.Close()

		return nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return &Migrator{migrate: m, logger: logger}, nil
}

// Up runs all pending migrations.
func (m *Migrator) Up() error {
	m.logger.Infow("running database migrations")

	if err := m.migrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.logger.Infow("no migrations to apply")

			return nil
		}

		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.logger.Infow("migrations completed")

	return nil
}

// Down rolls back all migrations.
func (m *Migrator) Down() error {
	m.logger.Warnw("rolling back all migrations")

	if err := m.migrate.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to rollback migrations: %w", err)
	}

	return nil
}

// Close releases the migration source and the database/sql view of the
// pool. The pgx pool itself stays open.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.migrate.Close()

	return errors.Join(srcErr, dbErr)
}
