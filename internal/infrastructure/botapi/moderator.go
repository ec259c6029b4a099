// Package botapi contains the Telegram Bot API client used for channel moderation
package botapi

import (
	"context"
	"fmt"
	"sync"

	tgbot "github.com/go-telegram/bot"
	"github.com/rs/zerolog"

	"github.com/thecurioussailor/telegramAPI/config"
	telegramerrors "github.com/thecurioussailor/telegramAPI/internal/domain/telegram/errors"
)

// Moderator bans and unbans channel members with the service bot.
// The bot client is created on first use so that a missing or unreachable
// Bot API does not block startup.
type Moderator struct {
	token     string
	serverURL string
	logger    zerolog.Logger

	mu  sync.Mutex
	bot *tgbot.Bot
}

// NewModerator creates a moderator from bot config
func NewModerator(cfg *config.BotConfig, logger zerolog.Logger) *Moderator {
	return &Moderator{
		token:     cfg.Token,
		serverURL: cfg.ServerURL,
		logger:    logger.With().Str("component", "bot_api").Logger(),
	}
}

// Configured reports whether a bot token is set
func (m *Moderator) Configured() bool {
	return m.token != ""
}

// BanChatMember bans the user from the chat, keeping their messages
func (m *Moderator) BanChatMember(ctx context.Context, chatID string, userID int64) (bool, error) {
	bot, err := m.client()
	if err != nil {
		return false, err
	}

	ok, err := bot.BanChatMember(ctx, &tgbot.BanChatMemberParams{
		ChatID:         chatID,
		UserID:         userID,
		RevokeMessages: false,
	})
	if err != nil {
		m.logger.Warn().Err(err).Str("chat_id", chatID).Int64("user_id", userID).Msg("banChatMember failed")
		return false, fmt.Errorf("banChatMember: %w", err)
	}

	m.logger.Debug().Str("chat_id", chatID).Int64("user_id", userID).Bool("ok", ok).Msg("banChatMember done")
	return ok, nil
}

// UnbanChatMember lifts a ban. Members that are not banned are left in place.
func (m *Moderator) UnbanChatMember(ctx context.Context, chatID string, userID int64) (bool, error) {
	bot, err := m.client()
	if err != nil {
		return false, err
	}

	ok, err := bot.UnbanChatMember(ctx, &tgbot.UnbanChatMemberParams{
		ChatID:       chatID,
		UserID:       userID,
		OnlyIfBanned: true,
	})
	if err != nil {
		m.logger.Warn().Err(err).Str("chat_id", chatID).Int64("user_id", userID).Msg("unbanChatMember failed")
		return false, fmt.Errorf("unbanChatMember: %w", err)
	}

	m.logger.Debug().Str("chat_id", chatID).Int64("user_id", userID).Bool("ok", ok).Msg("unbanChatMember done")
	return ok, nil
}

func (m *Moderator) client() (*tgbot.Bot, error) {
	if m.token == "" {
		return nil, telegramerrors.ErrBotNotConfigured
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.bot != nil {
		return m.bot, nil
	}

	var opts []tgbot.Option
	if m.serverURL != "" {
		opts = append(opts, tgbot.WithServerURL(m.serverURL))
	}

	bot, err := tgbot.New(m.token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	m.logger.Info().Msg("Bot API client created")
	m.bot = bot
	return bot, nil
}
