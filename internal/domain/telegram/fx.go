package telegram

import (
	"go.uber.org/fx"

	telegramhttp "github.com/thecurioussailor/telegramAPI/internal/domain/telegram/delivery/http"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/deps"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/usecase/business"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/botapi"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/http/server"
	mtproto "github.com/thecurioussailor/telegramAPI/internal/infrastructure/telegram"
)

// Module provides telegram domain components for fx DI
var Module = fx.Module("telegram-domain",
	fx.Provide(
		func(r *mtproto.SessionRunner) deps.SessionRunner {
			return r
		},
		func(m *botapi.Moderator) deps.BotModerator {
			return m
		},
		business.NewUseCase,
		telegramhttp.NewTelegramHandler,
		telegramhttp.NewRouter,
	),
	fx.Invoke(registerRoutes),
)

// registerRoutes registers telegram HTTP routes on the server
func registerRoutes(srv *server.Server, router *telegramhttp.Router) {
	router.RegisterRoutes(srv.Router)
}
