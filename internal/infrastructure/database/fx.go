package database

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/thecurioussailor/telegramAPI/config"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("database",
	fx.Provide(NewPostgresDBFx),
)

// NewPostgresDBFx opens the pool and migrates the schema; a migration
// failure aborts startup. The start hook pings so an unreachable database
// is reported before the HTTP server binds.
func NewPostgresDBFx(
	lc fx.Lifecycle,
	cfg *config.DatabaseConfig,
	logger zerolog.Logger,
) (*gorm.DB, error) {
	log := logger.With().Str("component", "database").Logger()

	db, err := NewPostgresDB(cfg, logger)
	if err != nil {
		return nil, err
	}

	version, err := RunMigrations(db, cfg, logger)
	if err != nil {
		return nil, err
	}
	log.Info().Uint("schema_version", version).Msg("Schema up to date")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := Ping(ctx, db); err != nil {
				return err
			}
			log.Info().
				Str("host", cfg.Host).
				Str("database", cfg.DBName).
				Msg("Database reachable")
			return nil
		},
		OnStop: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			log.Info().Msg("Closing database pool")
			return sqlDB.Close()
		},
	})

	return db, nil
}
