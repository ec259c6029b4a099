package app

import (
	"go.uber.org/fx"

	"github.com/thecurioussailor/telegramAPI/config"
	"github.com/thecurioussailor/telegramAPI/internal/domain/auth"
	"github.com/thecurioussailor/telegramAPI/internal/domain/channel"
	"github.com/thecurioussailor/telegramAPI/internal/domain/health"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram"
	"github.com/thecurioussailor/telegramAPI/internal/domain/user"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/logger"
)

// CreateApp creates the fx application with all dependencies
func CreateApp() fx.Option {
	return fx.Options(
		fx.WithLogger(logger.NewFxLogger),
		fx.Provide(config.Out),
		infrastructure.Module,
		user.Module,
		channel.Module,
		auth.Module,
		telegram.Module,
		health.Module,
	)
}
