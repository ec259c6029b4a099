package http

import (
	"github.com/fasthttp/router"
	"github.com/rs/zerolog"
)

// Router registers auth HTTP routes
type Router struct {
	handler *AuthHandler
	logger  zerolog.Logger
}

// NewRouter creates a new auth router
func NewRouter(handler *AuthHandler, logger zerolog.Logger) *Router {
	return &Router{
		handler: handler,
		logger:  logger,
	}
}

// RegisterRoutes registers auth routes on the router
func (r *Router) RegisterRoutes(rt *router.Router) {
	group := rt.Group("/auth")
	group.POST("/signup", r.handler.Signup)
	group.POST("/signin", r.handler.Signin)

	r.logger.Info().Msg("Auth routes registered")
}
