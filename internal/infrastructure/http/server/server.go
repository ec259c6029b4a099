package server

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/metrics"
	"github.com/thecurioussailor/telegramAPI/pkg/httputil"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Options configures the HTTP server.
type Options struct {
	Name string
	Port string
	// WriteTimeout must outlast the slowest Telegram round trip.
	WriteTimeout time.Duration
}

// Server is the fasthttp front of the gateway. Domain modules add their
// routes to Router before the fx start hook runs.
type Server struct {
	server  *fasthttp.Server
	Router  *router.Router
	addr    string
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewServer(opts Options, m *metrics.Metrics, logger zerolog.Logger) *Server {
	r := router.New()
	r.SaveMatchedRoutePath = true

	s := &Server{
		Router:  r,
		addr:    net.JoinHostPort("", opts.Port),
		metrics: m,
		logger:  logger.With().Str("component", "http_server").Logger(),
	}

	r.NotFound = func(ctx *fasthttp.RequestCtx) {
		httputil.WriteErrorResponse(ctx, "Not Found", fasthttp.StatusNotFound)
	}
	r.MethodNotAllowed = func(ctx *fasthttp.RequestCtx) {
		httputil.WriteErrorResponse(ctx, "Method Not Allowed", fasthttp.StatusMethodNotAllowed)
	}
	r.PanicHandler = func(ctx *fasthttp.RequestCtx, rcv interface{}) {
		s.logger.Error().
			Interface("panic", rcv).
			Str("path", string(ctx.Path())).
			Msg("handler panicked")
		httputil.WriteErrorResponse(ctx, "Internal Server Error", fasthttp.StatusInternalServerError)
	}

	s.server = &fasthttp.Server{
		Handler:      httputil.Chain(r.Handler, s.observe),
		Name:         opts.Name,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// RegisterMetrics exposes the Prometheus registry at /metrics.
func (s *Server) RegisterMetrics() {
	s.Router.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()))
}

// Handler returns the root handler including access logging.
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.server.Handler
}

// Start binds the listener before returning so a taken port fails startup,
// then serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp4", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")

	go func() {
		if err := s.server.Serve(ln); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server stopped with error")
		}
	}()

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server")

	if err := s.server.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// observe logs every request and records it under the matched route pattern.
func (s *Server) observe(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)
		elapsed := time.Since(start)

		route, _ := ctx.UserValue(router.MatchedRoutePathParam).(string)
		if route == "" {
			route = "unmatched"
		}
		method := string(ctx.Method())
		status := ctx.Response.StatusCode()

		if s.metrics != nil {
			s.metrics.RecordHTTPRequest(method, route, status, elapsed.Seconds())
		}

		event := s.logger.Debug()
		if status >= fasthttp.StatusInternalServerError {
			event = s.logger.Warn()
		}
		event.
			Str("method", method).
			Str("route", route).
			Int("status", status).
			Dur("duration", elapsed).
			Msg("request served")
	}
}
