package deps

import (
	"context"

	"github.com/thecurioussailor/telegramAPI/internal/domain/user/entities"
)

// UserRepository defines interface for user and Telegram session storage
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	// SaveOTPRequest stores the session used to request a login code together with the code hash.
	SaveOTPRequest(ctx context.Context, id string, session []byte, phoneNumber, phoneCodeHash string) error
	// MarkAuthenticated stores the signed-in session and sets the authenticated flag.
	MarkAuthenticated(ctx context.Context, id string, session []byte) error
}
