package entities

import "time"

// Channel is a Telegram broadcast channel created through the service
type Channel struct {
	ID          string    `json:"id"`
	TelegramID  string    `json:"telegramId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	HasBot      bool      `json:"hasBot"`
	BotUsername *string   `json:"botUsername"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
