package deps

import (
	"context"

	channelentities "github.com/thecurioussailor/telegramAPI/internal/domain/channel/entities"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/entities"
)

// SessionRunner opens a Telegram client over a stored session for the duration of fn.
// It returns the session as it stands after fn, which callers persist when
// the login state changed. A nil session starts from an empty one.
type SessionRunner interface {
	Run(ctx context.Context, session []byte, fn func(ctx context.Context, s RemoteSession) error) ([]byte, error)
}

// RemoteSession is the set of MTProto calls made on behalf of a user
type RemoteSession interface {
	SendCode(ctx context.Context, phoneNumber string) (string, error)
	SignIn(ctx context.Context, phoneNumber, code, phoneCodeHash string) error
	CheckPassword(ctx context.Context, password string) error
	IsAuthorized(ctx context.Context) (bool, error)

	CreateChannel(ctx context.Context, title, about string) (*entities.CreatedChannel, error)
	ResolveUser(ctx context.Context, username string) (*entities.RemoteUser, error)
	// FindChannel scans the caller's dialogs for the stored channel id.
	FindChannel(ctx context.Context, storedID string) (*entities.RemoteChannel, error)

	PromoteBot(ctx context.Context, channel *entities.RemoteChannel, bot *entities.RemoteUser, rank string) error
	InviteUser(ctx context.Context, channel *entities.RemoteChannel, user *entities.RemoteUser) error
	KickUser(ctx context.Context, channel *entities.RemoteChannel, user *entities.RemoteUser) error
	BanUser(ctx context.Context, channel *entities.RemoteChannel, user *entities.RemoteUser) error
	UnbanUser(ctx context.Context, channel *entities.RemoteChannel, user *entities.RemoteUser) error
}

// BotModerator bans and unbans channel members through the Bot API.
// The bool is the acknowledgement flag returned by Telegram.
type BotModerator interface {
	BanChatMember(ctx context.Context, chatID string, userID int64) (bool, error)
	UnbanChatMember(ctx context.Context, chatID string, userID int64) (bool, error)
}

// EventPublisher publishes channel audit events
type EventPublisher interface {
	Publish(ctx context.Context, event entities.ChannelEvent) error
}

// TelegramService is the use case behind the /telegram routes
type TelegramService interface {
	RequestOTP(ctx context.Context, userID, phoneNumber string) error
	VerifyCode(ctx context.Context, userID, code string) error
	SubmitPassword(ctx context.Context, userID, password string) error

	CreateChannel(ctx context.Context, userID, name, description string) (*channelentities.Channel, error)
	ListChannels(ctx context.Context, userID string) ([]channelentities.Channel, error)
	AddBot(ctx context.Context, userID, channelID, botUsername string) (*channelentities.Channel, error)
	AddUser(ctx context.Context, userID, channelID, username string) error
	RemoveUser(ctx context.Context, userID, channelID, username string) error
	BanUser(ctx context.Context, userID, channelID, username string) (*entities.ModerationResult, error)
	UnbanUser(ctx context.Context, userID, channelID, username string) (*entities.ModerationResult, error)
}
