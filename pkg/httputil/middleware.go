package httputil

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
)

// Middleware decorates a handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// Chain wraps h so that mws run in the order given, the first one outermost.
func Chain(h fasthttp.RequestHandler, mws ...Middleware) fasthttp.RequestHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// MiddlewareGroup is a router group whose routes all pass through the same chain.
type MiddlewareGroup struct {
	group *router.Group
	mws   []Middleware
}

func NewMiddlewareGroup(group *router.Group) *MiddlewareGroup {
	return &MiddlewareGroup{group: group}
}

// Use appends middleware for routes registered afterwards.
func (g *MiddlewareGroup) Use(mws ...Middleware) *MiddlewareGroup {
	g.mws = append(g.mws, mws...)
	return g
}

// Group opens a sub path that starts with a copy of the current chain.
func (g *MiddlewareGroup) Group(path string) *MiddlewareGroup {
	inherited := make([]Middleware, len(g.mws))
	copy(inherited, g.mws)
	return &MiddlewareGroup{group: g.group.Group(path), mws: inherited}
}

// Handle registers h for method and path behind the group chain.
func (g *MiddlewareGroup) Handle(method, path string, h fasthttp.RequestHandler) {
	g.group.Handle(method, path, Chain(h, g.mws...))
}

func (g *MiddlewareGroup) GET(path string, h fasthttp.RequestHandler) {
	g.Handle(fasthttp.MethodGet, path, h)
}

func (g *MiddlewareGroup) POST(path string, h fasthttp.RequestHandler) {
	g.Handle(fasthttp.MethodPost, path, h)
}
