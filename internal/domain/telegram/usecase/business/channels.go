package business

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	channelentities "github.com/thecurioussailor/telegramAPI/internal/domain/channel/entities"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/deps"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/entities"
	telegramerrors "github.com/thecurioussailor/telegramAPI/internal/domain/telegram/errors"
)

// botAdminRank is the custom title shown for the promoted bot
const botAdminRank = "Channel Bot"

// memberFunc is a membership change applied to a located channel and resolved user
type memberFunc func(ctx context.Context, s deps.RemoteSession, channel *entities.RemoteChannel, member *entities.RemoteUser) error

// CreateChannel creates a broadcast channel on Telegram and records it for the caller
func (uc *UseCase) CreateChannel(ctx context.Context, userID, name, description string) (*channelentities.Channel, error) {
	start := time.Now()
	channel, err := uc.createChannel(ctx, userID, strings.TrimSpace(name), description)
	uc.observe("create_channel", start, err)
	return channel, err
}

func (uc *UseCase) createChannel(ctx context.Context, userID, name, description string) (*channelentities.Channel, error) {
	if name == "" {
		return nil, telegramerrors.ErrChannelNameRequired
	}

	user, err := uc.linkedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var created *entities.CreatedChannel
	err = uc.runAuthorized(ctx, user, func(ctx context.Context, s deps.RemoteSession) error {
		c, err := s.CreateChannel(ctx, name, description)
		if err != nil {
			if errors.Is(err, telegramerrors.ErrUnexpectedResponse) {
				return telegramerrors.ErrChannelInfoMissing
			}
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, upstream("Failed to create channel", err)
	}

	channel := &channelentities.Channel{
		ID:          uuid.NewString(),
		TelegramID:  strconv.FormatInt(created.ID, 10),
		Title:       name,
		Description: description,
		OwnerID:     userID,
	}
	if err := uc.channels.Create(ctx, channel); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("user_id", userID).
		Str("channel_id", channel.ID).
		Str("telegram_id", channel.TelegramID).
		Msg("channel created")

	uc.publish(ctx, channelEvent(entities.EventChannelCreated, channel))

	return channel, nil
}

// ListChannels returns the caller's channels without contacting Telegram
func (uc *UseCase) ListChannels(ctx context.Context, userID string) ([]channelentities.Channel, error) {
	start := time.Now()
	channels, err := uc.channels.ListByOwner(ctx, userID)
	uc.observe("list_channels", start, err)
	if err != nil {
		return nil, err
	}

	if channels == nil {
		channels = []channelentities.Channel{}
	}
	return channels, nil
}

// AddBot promotes the bot to administrator of the caller's channel
func (uc *UseCase) AddBot(ctx context.Context, userID, channelID, botUsername string) (*channelentities.Channel, error) {
	start := time.Now()
	channel, err := uc.addBot(ctx, userID, strings.TrimSpace(channelID), strings.TrimSpace(botUsername))
	uc.observe("add_bot", start, err)
	return channel, err
}

func (uc *UseCase) addBot(ctx context.Context, userID, channelID, botUsername string) (*channelentities.Channel, error) {
	if channelID == "" || botUsername == "" {
		return nil, telegramerrors.ErrAddBotFieldsRequired
	}

	if !strings.HasPrefix(botUsername, "@") {
		return nil, telegramerrors.ErrBotUsernameFormat
	}

	user, err := uc.linkedUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	channel, err := uc.ownedChannel(ctx, userID, channelID)
	if err != nil {
		return nil, err
	}

	err = uc.runAuthorized(ctx, user, func(ctx context.Context, s deps.RemoteSession) error {
		bot, err := s.ResolveUser(ctx, entities.TrimUsername(botUsername))
		if err != nil {
			if errors.Is(err, telegramerrors.ErrRemoteUserNotFound) {
				return telegramerrors.ErrBotNotFound
			}
			return err
		}

		remote, err := s.FindChannel(ctx, channel.TelegramID)
		if err != nil {
			if errors.Is(err, telegramerrors.ErrRemoteChannelNotFound) {
				return telegramerrors.ErrBotChannelNotInDialogs
			}
			return err
		}

		return s.PromoteBot(ctx, remote, bot, botAdminRank)
	})
	if err != nil {
		return nil, upstream("Failed to add bot to channel", err)
	}

	updated, err := uc.channels.MarkBotAdded(ctx, channel.ID, botUsername)
	if err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("user_id", userID).
		Str("channel_id", channel.ID).
		Str("bot", botUsername).
		Msg("bot added as admin")

	event := channelEvent(entities.EventBotAdded, updated)
	event.Username = botUsername
	uc.publish(ctx, event)

	return updated, nil
}

// AddUser invites a user into the caller's channel
func (uc *UseCase) AddUser(ctx context.Context, userID, channelID, username string) error {
	start := time.Now()
	err := uc.changeMember(ctx, userID, channelID, username, false, "Failed to add user to channel", entities.EventUserAdded,
		func(ctx context.Context, s deps.RemoteSession, channel *entities.RemoteChannel, member *entities.RemoteUser) error {
			return s.InviteUser(ctx, channel, member)
		})
	uc.observe("add_user", start, err)
	return err
}

// RemoveUser kicks a user out of the caller's channel
func (uc *UseCase) RemoveUser(ctx context.Context, userID, channelID, username string) error {
	start := time.Now()
	err := uc.changeMember(ctx, userID, channelID, username, false, "Failed to remove user from channel", entities.EventUserRemoved,
		func(ctx context.Context, s deps.RemoteSession, channel *entities.RemoteChannel, member *entities.RemoteUser) error {
			return s.KickUser(ctx, channel, member)
		})
	uc.observe("remove_user", start, err)
	return err
}

// changeMember validates the request, resolves the member, locates the channel and applies fn
func (uc *UseCase) changeMember(
	ctx context.Context,
	userID, channelID, username string,
	requireBot bool,
	failurePrefix string,
	eventType entities.ChannelEventType,
	fn memberFunc,
) error {
	channel, member, err := uc.applyToMember(ctx, userID, channelID, username, requireBot, fn)
	if err != nil {
		return upstream(failurePrefix, err)
	}

	uc.logger.Info().
		Str("user_id", userID).
		Str("channel_id", channel.ID).
		Str("member", member).
		Str("event", string(eventType)).
		Msg("channel membership changed")

	event := channelEvent(eventType, channel)
	event.Username = member
	uc.publish(ctx, event)

	return nil
}

func (uc *UseCase) applyToMember(
	ctx context.Context,
	userID, channelID, username string,
	requireBot bool,
	fn memberFunc,
) (*channelentities.Channel, string, error) {
	channelID = strings.TrimSpace(channelID)
	member := entities.TrimUsername(username)
	if channelID == "" || member == "" {
		return nil, "", telegramerrors.ErrMemberFieldsRequired
	}

	user, err := uc.linkedUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	channel, err := uc.ownedChannel(ctx, userID, channelID)
	if err != nil {
		return nil, "", err
	}

	if requireBot && !channel.HasBot {
		return nil, "", telegramerrors.ErrBotNotAdded
	}

	err = uc.runAuthorized(ctx, user, func(ctx context.Context, s deps.RemoteSession) error {
		target, err := s.ResolveUser(ctx, member)
		if err != nil {
			if errors.Is(err, telegramerrors.ErrRemoteUserNotFound) {
				return telegramerrors.ErrUserNotFound
			}
			return err
		}

		remote, err := s.FindChannel(ctx, channel.TelegramID)
		if err != nil {
			if errors.Is(err, telegramerrors.ErrRemoteChannelNotFound) {
				return telegramerrors.ErrChannelNotInDialogs
			}
			return err
		}

		return fn(ctx, s, remote, target)
	})
	if err != nil {
		return nil, "", err
	}

	return channel, member, nil
}
