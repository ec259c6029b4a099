package entities

import "time"

// ChannelEventType identifies a channel audit event
type ChannelEventType string

const (
	EventChannelCreated ChannelEventType = "channel.created"
	EventBotAdded       ChannelEventType = "channel.bot_added"
	EventUserAdded      ChannelEventType = "channel.user_added"
	EventUserRemoved    ChannelEventType = "channel.user_removed"
	EventUserBanned     ChannelEventType = "channel.user_banned"
	EventUserUnbanned   ChannelEventType = "channel.user_unbanned"
)

// ChannelEvent is published after a successful channel operation
type ChannelEvent struct {
	Type       ChannelEventType `json:"type"`
	ChannelID  string           `json:"channelId"`
	TelegramID string           `json:"telegramId"`
	OwnerID    string           `json:"ownerId"`
	Username   string           `json:"username,omitempty"`
	Method     ModerationMethod `json:"method,omitempty"`
	OccurredAt time.Time        `json:"occurredAt"`
}
