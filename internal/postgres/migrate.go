package postgres

import (
	"database/sql"
	"errors"

	"github.com/finbooks/finbooks/internal/config"
	"github.com/finbooks/finbooks/internal/logger"
	migrate "github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// newMigrator opens a dedicated connection for schema migrations. The
// application pool is not reused because migrate takes ownership of the
// connection it is given.
func newMigrator(cfg *config.Configuration, sourceURL string) (*migrate.Migrate, error) {
	db, err := sql.Open("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return nil, err
	}

	return migrate.NewWithDatabaseInstance(sourceURL, cfg.Postgres.DBName, driver)
}

// Migrate applies all pending up migrations from sourceURL.
func Migrate(cfg *config.Configuration, log *logger.Logger, sourceURL string) error {
	m, err := newMigrator(cfg, sourceURL)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("No new migrations to apply")
	} else {
		log.Info("Database migrations applied")
	}

	return closeMigrator(m)
}

// Rollback reverts the most recently applied migration.
func Rollback(cfg *config.Configuration, log *logger.Logger, sourceURL string) error {
	m, err := newMigrator(cfg, sourceURL)
	if err != nil {
		return err
	}

	err = m.Steps(-1)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	log.Info("Rolled back one migration")

	return closeMigrator(m)
}

func closeMigrator(m *migrate.Migrate) error {
	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	return dbErr
}
