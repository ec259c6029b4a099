package http

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/thecurioussailor/telegramAPI/pkg/httputil"
)

// Pinger checks database connectivity
type Pinger interface {
	PingContext(ctx context.Context) error
}

// BotStatus reports whether the Bot API token is configured
type BotStatus interface {
	Configured() bool
}

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// ComponentHealth represents health status of a single component
type ComponentHealth struct {
	Name     string `json:"name"`
	Healthy  bool   `json:"healthy"`
	Critical bool   `json:"-"`
	Message  string `json:"message,omitempty"`
}

// HealthResponse represents the JSON response for health check
type HealthResponse struct {
	Status     HealthStatus      `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Components []ComponentHealth `json:"components"`
}

// HealthHandler handles health check requests
type HealthHandler struct {
	db           Pinger
	bot          BotStatus
	kafkaEnabled bool
	timeout      time.Duration
	logger       zerolog.Logger
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(db Pinger, bot BotStatus, kafkaEnabled bool, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		db:           db,
		bot:          bot,
		kafkaEnabled: kafkaEnabled,
		timeout:      5 * time.Second,
		logger:       logger.With().Str("handler", "health").Logger(),
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(ctx *fasthttp.RequestCtx) {
	checkCtx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	components := h.checkComponents(checkCtx)
	status := determineOverallStatus(components)

	logEvent := h.logger.Debug()
	switch status {
	case HealthStatusUnhealthy:
		logEvent = h.logger.Warn()
	case HealthStatusDegraded:
		logEvent = h.logger.Info()
	}
	logEvent.
		Str("status", string(status)).
		Interface("components", components).
		Msg("Health check completed")

	httputil.WriteHealthResponse(ctx, HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Components: components,
	}, status != HealthStatusUnhealthy)
}

func (h *HealthHandler) checkComponents(ctx context.Context) []ComponentHealth {
	components := make([]ComponentHealth, 0, 3)

	database := ComponentHealth{Name: "database", Healthy: true, Critical: true}
	if err := h.db.PingContext(ctx); err != nil {
		database.Healthy = false
		database.Message = "Database is not reachable"
		h.logger.Warn().Err(err).Msg("database ping failed")
	}
	components = append(components, database)

	bot := ComponentHealth{Name: "bot_api", Healthy: h.bot.Configured()}
	if !bot.Healthy {
		bot.Message = "Bot token is not configured"
	}
	components = append(components, bot)

	kafka := ComponentHealth{Name: "kafka_producer", Healthy: true}
	if !h.kafkaEnabled {
		kafka.Message = "Disabled"
	}
	components = append(components, kafka)

	return components
}

// determineOverallStatus is unhealthy when a critical component fails and degraded for any other failure
func determineOverallStatus(components []ComponentHealth) HealthStatus {
	status := HealthStatusHealthy

	for _, component := range components {
		if component.Healthy {
			continue
		}
		if component.Critical {
			return HealthStatusUnhealthy
		}
		status = HealthStatusDegraded
	}

	return status
}
