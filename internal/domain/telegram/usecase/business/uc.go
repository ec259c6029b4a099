package business

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	channeldeps "github.com/thecurioussailor/telegramAPI/internal/domain/channel/deps"
	channelentities "github.com/thecurioussailor/telegramAPI/internal/domain/channel/entities"
	channelerrors "github.com/thecurioussailor/telegramAPI/internal/domain/channel/errors"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/deps"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/entities"
	telegramerrors "github.com/thecurioussailor/telegramAPI/internal/domain/telegram/errors"
	userdeps "github.com/thecurioussailor/telegramAPI/internal/domain/user/deps"
	userentities "github.com/thecurioussailor/telegramAPI/internal/domain/user/entities"
	usererrors "github.com/thecurioussailor/telegramAPI/internal/domain/user/errors"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/metrics"
	pkgerrors "github.com/thecurioussailor/telegramAPI/pkg/errors"
)

// UseCase implements account linking and channel management on behalf of users
type UseCase struct {
	users    userdeps.UserRepository
	channels channeldeps.ChannelRepository
	runner   deps.SessionRunner
	bot      deps.BotModerator
	events   deps.EventPublisher
	metrics  *metrics.Metrics
	logger   zerolog.Logger
	now      func() time.Time
}

// NewUseCase creates a new telegram use case
func NewUseCase(
	users userdeps.UserRepository,
	channels channeldeps.ChannelRepository,
	runner deps.SessionRunner,
	bot deps.BotModerator,
	events deps.EventPublisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) deps.TelegramService {
	return &UseCase{
		users:    users,
		channels: channels,
		runner:   runner,
		bot:      bot,
		events:   events,
		metrics:  m,
		logger:   logger.With().Str("usecase", "telegram").Logger(),
		now:      time.Now,
	}
}

// observe records duration and failures of a use case operation
func (uc *UseCase) observe(operation string, start time.Time, err error) {
	uc.metrics.RecordTelegramOperation(operation, time.Since(start).Seconds())
	if err != nil {
		uc.metrics.RecordTelegramError(operation, errorType(err))
	}
}

func errorType(err error) string {
	var (
		validationErr   *pkgerrors.ValidationError
		unauthorizedErr *pkgerrors.UnauthorizedError
		permissionErr   *pkgerrors.PermissionError
		notFoundErr     *pkgerrors.NotFoundError
		upstreamErr     *pkgerrors.UpstreamError
	)

	switch {
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &unauthorizedErr):
		return "unauthorized"
	case errors.As(err, &permissionErr):
		return "permission"
	case errors.As(err, &notFoundErr):
		return "not_found"
	case errors.As(err, &upstreamErr):
		return "upstream"
	default:
		return "internal"
	}
}

// linkedUser loads a user whose Telegram account is authenticated
func (uc *UseCase) linkedUser(ctx context.Context, userID string) (*userentities.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return nil, telegramerrors.ErrNotVerified
		}
		return nil, err
	}

	if user.LinkState() != userentities.LinkStateAuthenticated {
		return nil, telegramerrors.ErrNotVerified
	}

	return user, nil
}

// ownedChannel loads a channel of the caller. Malformed ids are reported as not owned.
func (uc *UseCase) ownedChannel(ctx context.Context, userID, channelID string) (*channelentities.Channel, error) {
	if _, err := uuid.Parse(channelID); err != nil {
		return nil, channelerrors.ErrChannelNotFound
	}
	return uc.channels.GetOwned(ctx, channelID, userID)
}

// runAuthorized runs fn on the user's session once the session is confirmed as logged in
func (uc *UseCase) runAuthorized(
	ctx context.Context,
	user *userentities.User,
	fn func(ctx context.Context, s deps.RemoteSession) error,
) error {
	_, err := uc.runner.Run(ctx, user.Session, func(ctx context.Context, s deps.RemoteSession) error {
		authorized, err := s.IsAuthorized(ctx)
		if err != nil {
			return err
		}
		if !authorized {
			return telegramerrors.ErrTelegramUnauthorized
		}
		return fn(ctx, s)
	})
	return err
}

// upstream keeps typed errors and wraps remote failures with the operation prefix
func upstream(prefix string, err error) error {
	if pkgerrors.IsTyped(err) {
		return err
	}
	return pkgerrors.NewUpstreamError(prefix, err)
}

// publish emits a channel event. Failures never fail the request.
func (uc *UseCase) publish(ctx context.Context, event entities.ChannelEvent) {
	event.OccurredAt = uc.now().UTC()
	if err := uc.events.Publish(ctx, event); err != nil {
		uc.logger.Warn().Err(err).
			Str("type", string(event.Type)).
			Str("channel_id", event.ChannelID).
			Msg("failed to publish channel event")
	}
}

func channelEvent(eventType entities.ChannelEventType, channel *channelentities.Channel) entities.ChannelEvent {
	return entities.ChannelEvent{
		Type:       eventType,
		ChannelID:  channel.ID,
		TelegramID: channel.TelegramID,
		OwnerID:    channel.OwnerID,
	}
}
