package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/thecurioussailor/telegramAPI/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 500 * time.Millisecond

// NewPostgresDB opens the pool and applies the configured limits.
// The connection is not verified here; see Ping.
func NewPostgresDB(cfg *config.DatabaseConfig, logger zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger:         newGormLogger(logger),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// Ping checks that the database answers within ctx.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// newGormLogger sends gorm output through zerolog. SQL is traced only at
// debug level; slow queries and errors always surface as warnings.
func newGormLogger(logger zerolog.Logger) gormlogger.Interface {
	level := gormlogger.Warn
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		level = gormlogger.Info
	}

	return gormlogger.New(gormWriter{logger: logger.With().Str("component", "gorm").Logger()}, gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type gormWriter struct {
	logger zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Warn().Msgf(format, args...)
}
