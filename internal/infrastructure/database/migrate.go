package database

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/thecurioussailor/telegramAPI/config"
	"gorm.io/gorm"
)

// RunMigrations brings the schema in cfg.MigrationsPath up to date and
// returns the resulting version. A dirty schema is an error.
func RunMigrations(db *gorm.DB, cfg *config.DatabaseConfig, logger zerolog.Logger) (uint, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return 0, fmt.Errorf("failed to create migrate driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, cfg.DBName, driver)
	if err != nil {
		return 0, fmt.Errorf("failed to init migrate: %w", err)
	}
	m.Log = migrateLogger{logger: logger.With().Str("component", "migrate").Logger()}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migration failed: %w", err)
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty", version)
	}

	return version, nil
}

// migrateLogger implements migrate.Logger.
type migrateLogger struct {
	logger zerolog.Logger
}

func (l migrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}

func (l migrateLogger) Verbose() bool {
	return zerolog.GlobalLevel() <= zerolog.DebugLevel
}
