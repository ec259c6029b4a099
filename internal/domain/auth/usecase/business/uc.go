package business

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/thecurioussailor/telegramAPI/config"
	"github.com/thecurioussailor/telegramAPI/internal/domain/auth/deps"
	autherrors "github.com/thecurioussailor/telegramAPI/internal/domain/auth/errors"
	userdeps "github.com/thecurioussailor/telegramAPI/internal/domain/user/deps"
	"github.com/thecurioussailor/telegramAPI/internal/domain/user/entities"
	usererrors "github.com/thecurioussailor/telegramAPI/internal/domain/user/errors"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/metrics"
)

// UseCase implements signup and signin for application users
type UseCase struct {
	users      userdeps.UserRepository
	tokens     deps.TokenService
	bcryptCost int
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewUseCase creates a new auth use case
func NewUseCase(
	users userdeps.UserRepository,
	tokens deps.TokenService,
	cfg *config.AuthConfig,
	m *metrics.Metrics,
	logger zerolog.Logger,
) deps.AuthService {
	return &UseCase{
		users:      users,
		tokens:     tokens,
		bcryptCost: cfg.BcryptCost,
		metrics:    m,
		logger:     logger.With().Str("usecase", "auth").Logger(),
	}
}

// Signup registers a user and returns a token for it
func (uc *UseCase) Signup(ctx context.Context, username, password string) (string, error) {
	token, err := uc.signup(ctx, username, password)
	uc.metrics.RecordAuth("signup", err == nil)
	return token, err
}

func (uc *UseCase) signup(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", autherrors.ErrInvalidCredentials
	}

	_, err := uc.users.GetByUsername(ctx, username)
	if err == nil {
		return "", usererrors.ErrUserAlreadyExists
	}
	if !errors.Is(err, usererrors.ErrUserNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", autherrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return "", err
	}

	uc.logger.Info().Str("user_id", user.ID).Msg("user signed up")

	return uc.tokens.Issue(user.ID)
}

// Signin checks the credentials and returns a token
func (uc *UseCase) Signin(ctx context.Context, username, password string) (string, error) {
	token, err := uc.signin(ctx, username, password)
	uc.metrics.RecordAuth("signin", err == nil)
	return token, err
}

func (uc *UseCase) signin(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", autherrors.ErrInvalidCredentials
	}

	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.logger.Debug().Str("user_id", user.ID).Msg("password mismatch")
		return "", autherrors.ErrWrongPassword
	}

	return uc.tokens.Issue(user.ID)
}
