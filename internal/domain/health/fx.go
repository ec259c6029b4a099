package health

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/thecurioussailor/telegramAPI/config"
	healthhttp "github.com/thecurioussailor/telegramAPI/internal/domain/health/delivery/http"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/botapi"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/http/server"
)

// Module provides the health check endpoint for fx DI
var Module = fx.Module("health",
	fx.Provide(
		newHealthHandler,
		healthhttp.NewRouter,
	),
	fx.Invoke(registerRoutes),
)

func newHealthHandler(
	db *gorm.DB,
	bot *botapi.Moderator,
	kafkaCfg *config.KafkaConfig,
	logger zerolog.Logger,
) (*healthhttp.HealthHandler, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return healthhttp.NewHealthHandler(sqlDB, bot, kafkaCfg.Enabled, logger), nil
}

// registerRoutes registers health HTTP routes on the server
func registerRoutes(srv *server.Server, router *healthhttp.Router) {
	router.RegisterRoutes(srv.Router)
}
