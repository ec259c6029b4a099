package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/thecurioussailor/telegramAPI/internal/domain/channel/deps"
	"github.com/thecurioussailor/telegramAPI/internal/domain/channel/entities"
	channelerrors "github.com/thecurioussailor/telegramAPI/internal/domain/channel/errors"
	"gorm.io/gorm"
)

// Repository implements deps.ChannelRepository using PostgreSQL
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL channel repository
func NewRepository(db *gorm.DB) deps.ChannelRepository {
	return &Repository{db: db}
}

// Create inserts a channel record
func (r *Repository) Create(ctx context.Context, channel *entities.Channel) error {
	model := entities.NewChannelModel(channel)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create channel: %w", err)
	}

	channel.CreatedAt = model.CreatedAt
	channel.UpdatedAt = model.UpdatedAt
	return nil
}

// GetOwned retrieves a channel that belongs to ownerID
func (r *Repository) GetOwned(ctx context.Context, id, ownerID string) (*entities.Channel, error) {
	var model entities.ChannelModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, channelerrors.ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}

	return model.ToEntity(), nil
}

// ListByOwner retrieves all channels of a user, oldest first
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]entities.Channel, error) {
	var models []entities.ChannelModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}

	channels := make([]entities.Channel, len(models))
	for i, model := range models {
		channels[i] = *model.ToEntity()
	}

	return channels, nil
}

// MarkBotAdded records that botUsername was promoted to admin and returns the updated channel
func (r *Repository) MarkBotAdded(ctx context.Context, id, botUsername string) (*entities.Channel, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.ChannelModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"has_bot":      true,
			"bot_username": botUsername,
		})

	if result.Error != nil {
		return nil, fmt.Errorf("failed to update channel: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, channelerrors.ErrChannelNotFound
	}

	var model entities.ChannelModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to reload channel: %w", err)
	}

	return model.ToEntity(), nil
}
