package http

import (
	"github.com/fasthttp/router"
	"github.com/rs/zerolog"

	authhttp "github.com/thecurioussailor/telegramAPI/internal/domain/auth/delivery/http"
	"github.com/thecurioussailor/telegramAPI/pkg/httputil"
)

// Router registers telegram HTTP routes behind the auth middleware
type Router struct {
	handler    *TelegramHandler
	middleware *authhttp.Middleware
	logger     zerolog.Logger
}

// NewRouter creates a new telegram router
func NewRouter(handler *TelegramHandler, middleware *authhttp.Middleware, logger zerolog.Logger) *Router {
	return &Router{
		handler:    handler,
		middleware: middleware,
		logger:     logger,
	}
}

// RegisterRoutes registers telegram routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	group := httputil.NewMiddlewareGroup(rt.Group("/telegram")).Use(r.middleware.Handle)

	group.POST("/requestOTP", r.handler.RequestOTP)
	group.POST("/sendCode", r.handler.SendCode)
	group.POST("/sendPassword", r.handler.SendPassword)

	group.POST("/createChannel", r.handler.CreateChannel)
	group.POST("/listChannels", r.handler.ListChannels)
	group.POST("/addBot", r.handler.AddBot)
	group.POST("/addUser", r.handler.AddUser)
	group.POST("/removeUser", r.handler.RemoveUser)
	group.POST("/banUser", r.handler.BanUser)
	group.POST("/unbanUser", r.handler.UnbanUser)

	r.logger.Info().Msg("Telegram routes registered")
}
