package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/thecurioussailor/telegramAPI/internal/domain/user/deps"
	"github.com/thecurioussailor/telegramAPI/internal/domain/user/entities"
	usererrors "github.com/thecurioussailor/telegramAPI/internal/domain/user/errors"
	"gorm.io/gorm"
)

// Repository implements deps.UserRepository using PostgreSQL
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL user repository
func NewRepository(db *gorm.DB) deps.UserRepository {
	return &Repository{db: db}
}

// Create inserts a new user. A taken username yields ErrUserAlreadyExists.
func (r *Repository) Create(ctx context.Context, user *entities.User) error {
	model := entities.NewUserModel(user)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usererrors.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

// GetByID retrieves a user by primary key
func (r *Repository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	var model entities.UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return model.ToEntity(), nil
}

// GetByUsername retrieves a user by unique username
func (r *Repository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	var model entities.UserModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return model.ToEntity(), nil
}

// SaveOTPRequest stores the session, phone number and code hash of a login code request
func (r *Repository) SaveOTPRequest(ctx context.Context, id string, session []byte, phoneNumber, phoneCodeHash string) error {
	return r.update(ctx, id, map[string]interface{}{
		"session":         session,
		"phone_number":    phoneNumber,
		"phone_code_hash": phoneCodeHash,
	})
}

// MarkAuthenticated stores the signed-in session and sets the authenticated flag
func (r *Repository) MarkAuthenticated(ctx context.Context, id string, session []byte) error {
	return r.update(ctx, id, map[string]interface{}{
		"session":       session,
		"authenticated": true,
	})
}

func (r *Repository) update(ctx context.Context, id string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&entities.UserModel{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return usererrors.ErrUserNotFound
	}

	return nil
}
