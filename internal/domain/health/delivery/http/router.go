package http

import "github.com/fasthttp/router"

// Router registers the health route
type Router struct {
	handler *HealthHandler
}

// NewRouter creates a new health router
func NewRouter(handler *HealthHandler) *Router {
	return &Router{handler: handler}
}

// RegisterRoutes registers GET /health
func (r *Router) RegisterRoutes(rt *router.Router) {
	rt.GET("/health", r.handler.Health)
}
