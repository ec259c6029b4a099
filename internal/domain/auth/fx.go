package auth

import (
	"go.uber.org/fx"

	authhttp "github.com/thecurioussailor/telegramAPI/internal/domain/auth/delivery/http"
	"github.com/thecurioussailor/telegramAPI/internal/domain/auth/deps"
	"github.com/thecurioussailor/telegramAPI/internal/domain/auth/usecase/business"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/http/server"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/token"
)

// Module provides auth domain components for fx DI
var Module = fx.Module("auth",
	fx.Provide(
		func(s *token.Service) deps.TokenService {
			return s
		},
		business.NewUseCase,
		authhttp.NewAuthHandler,
		authhttp.NewMiddleware,
		authhttp.NewRouter,
	),
	fx.Invoke(registerRoutes),
)

// registerRoutes registers auth HTTP routes on the server
func registerRoutes(srv *server.Server, router *authhttp.Router) {
	router.RegisterRoutes(srv.Router)
}
