package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/thecurioussailor/telegramAPI/config"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/entities"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/metrics"
)

// EventProducer publishes channel audit events, keyed by channel id
type EventProducer struct {
	producer sarama.SyncProducer
	topic    string
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewEventProducer creates a Kafka producer for channel events
func NewEventProducer(cfg *config.KafkaConfig, m *metrics.Metrics, logger zerolog.Logger) (*EventProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 500 * time.Millisecond
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Version = sarama.V2_6_0_0
	saramaConfig.ClientID = "netly-server-channel-events"

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create Kafka producer")
		return nil, err
	}

	logger.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.TopicChannelEvents).
		Msg("Kafka event producer initialized")

	return newEventProducer(producer, cfg.TopicChannelEvents, m, logger), nil
}

func newEventProducer(producer sarama.SyncProducer, topic string, m *metrics.Metrics, logger zerolog.Logger) *EventProducer {
	return &EventProducer{
		producer: producer,
		topic:    topic,
		metrics:  m,
		logger:   logger,
	}
}

// Publish sends one channel event
func (p *EventProducer) Publish(ctx context.Context, event entities.ChannelEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	bytes, err := json.Marshal(event)
	if err != nil {
		p.metrics.RecordKafkaError("marshal")
		p.logger.Error().Err(err).Str("type", string(event.Type)).Msg("failed to marshal channel event")
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.ChannelID),
		Value: sarama.ByteEncoder(bytes),
	}

	start := time.Now()
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.metrics.RecordKafkaError("send")
		p.logger.Error().Err(err).
			Str("topic", p.topic).
			Str("type", string(event.Type)).
			Str("channel_id", event.ChannelID).
			Msg("failed to send channel event")
		return err
	}
	p.metrics.RecordKafkaMessage(time.Since(start).Seconds())

	p.logger.Info().
		Str("topic", p.topic).
		Str("type", string(event.Type)).
		Str("channel_id", event.ChannelID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("channel event sent")

	return nil
}

// Close closes the Kafka producer
func (p *EventProducer) Close() error {
	if p.producer == nil {
		return nil
	}

	if err := p.producer.Close(); err != nil {
		p.logger.Error().Err(err).Msg("failed to close event producer")
		return err
	}

	p.logger.Info().Msg("event producer closed")
	return nil
}

// NoopPublisher drops events when Kafka is disabled
type NoopPublisher struct {
	logger zerolog.Logger
}

// Publish logs the event at debug level
func (p NoopPublisher) Publish(_ context.Context, event entities.ChannelEvent) error {
	p.logger.Debug().Str("type", string(event.Type)).Str("channel_id", event.ChannelID).Msg("kafka disabled, event dropped")
	return nil
}
