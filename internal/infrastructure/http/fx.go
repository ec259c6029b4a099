package http

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thecurioussailor/telegramAPI/config"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/http/server"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/metrics"
	"go.uber.org/fx"
)

// writeSlack is added on top of the Telegram request timeout so the
// handler can still write its error body after the upstream deadline.
const writeSlack = 10 * time.Second

var Module = fx.Module("http",
	fx.Provide(NewServerFx),
)

// NewServerFx builds the server and ties it to the fx lifecycle. Start
// fails when the port cannot be bound.
func NewServerFx(
	lc fx.Lifecycle,
	serviceCfg *config.ServiceConfig,
	telegramCfg *config.TelegramConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *server.Server {
	srv := server.NewServer(server.Options{
		Name:         serviceCfg.Name,
		Port:         serviceCfg.Port,
		WriteTimeout: telegramCfg.RequestTimeout + writeSlack,
	}, m, logger)
	srv.RegisterMetrics()

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return srv.Start()
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, serviceCfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})

	return srv
}
