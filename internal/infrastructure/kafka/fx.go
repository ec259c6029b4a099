package kafka

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/thecurioussailor/telegramAPI/config"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/deps"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/metrics"
)

// Module provides the channel event publisher for fx DI
var Module = fx.Module("kafka",
	fx.Provide(NewEventPublisherFx),
)

// NewEventPublisherFx returns the Kafka producer, or a no-op publisher when Kafka is disabled
func NewEventPublisherFx(
	lc fx.Lifecycle,
	kafkaCfg *config.KafkaConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) (deps.EventPublisher, error) {
	logger = logger.With().Str("component", "event-producer").Logger()

	if !kafkaCfg.Enabled {
		logger.Info().Msg("Kafka disabled, channel events will not be published")
		return NoopPublisher{logger: logger}, nil
	}

	producer, err := NewEventProducer(kafkaCfg, m, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return producer.Close()
		},
	})

	return producer, nil
}
