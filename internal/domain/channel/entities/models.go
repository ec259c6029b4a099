package entities

import "time"

// ChannelModel is a GORM model for channels table
type ChannelModel struct {
	ID          string  `gorm:"primaryKey;type:uuid"`
	TelegramID  string  `gorm:"not null;size:64"`
	Title       string  `gorm:"not null;size:255"`
	Description string  `gorm:"not null;default:''"`
	OwnerID     string  `gorm:"not null;type:uuid;index"`
	HasBot      bool    `gorm:"not null;default:false"`
	BotUsername *string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ChannelModel) TableName() string {
	return "channels"
}

// ToEntity converts DB model to domain entity
func (m *ChannelModel) ToEntity() *Channel {
	return &Channel{
		ID:          m.ID,
		TelegramID:  m.TelegramID,
		Title:       m.Title,
		Description: m.Description,
		OwnerID:     m.OwnerID,
		HasBot:      m.HasBot,
		BotUsername: m.BotUsername,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// NewChannelModel converts a domain entity to DB model
func NewChannelModel(c *Channel) *ChannelModel {
	return &ChannelModel{
		ID:          c.ID,
		TelegramID:  c.TelegramID,
		Title:       c.Title,
		Description: c.Description,
		OwnerID:     c.OwnerID,
		HasBot:      c.HasBot,
		BotUsername: c.BotUsername,
	}
}
