package deps

import (
	"context"

	"github.com/thecurioussailor/telegramAPI/internal/domain/channel/entities"
)

// ChannelRepository defines interface for channel record storage.
// Lookups are scoped to the owning user.
type ChannelRepository interface {
	Create(ctx context.Context, channel *entities.Channel) error
	GetOwned(ctx context.Context, id, ownerID string) (*entities.Channel, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entities.Channel, error)
	MarkBotAdded(ctx context.Context, id, botUsername string) (*entities.Channel, error)
}
