package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	telegramerrors "github.com/thecurioussailor/telegramAPI/internal/domain/telegram/errors"
	"github.com/thecurioussailor/telegramAPI/internal/utils"
)

// remoteSession implements deps.RemoteSession on top of a running gotd client
type remoteSession struct {
	client   *telegram.Client
	api      *tg.Client
	limiter  *rate.Limiter
	pageSize int
	logger   zerolog.Logger
}

func (s *remoteSession) wait(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait cancelled: %w", err)
	}
	return nil
}

// SendCode requests a login code and returns its phone code hash
func (s *remoteSession) SendCode(ctx context.Context, phoneNumber string) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}

	sent, err := s.client.Auth().SendCode(ctx, phoneNumber, auth.SendCodeOptions{})
	if err != nil {
		s.logger.Error().Err(err).Str("phone", utils.MaskPhoneNumber(phoneNumber)).Msg("failed to send code")
		return "", err
	}

	code, ok := sent.(*tg.AuthSentCode)
	if !ok {
		return "", fmt.Errorf("%w: sent code %T", telegramerrors.ErrUnexpectedResponse, sent)
	}

	s.logger.Info().Str("phone", utils.MaskPhoneNumber(phoneNumber)).Msg("login code sent")
	return code.PhoneCodeHash, nil
}

// SignIn completes phone login. Accounts with a cloud password yield ErrPasswordNeeded.
func (s *remoteSession) SignIn(ctx context.Context, phoneNumber, code, phoneCodeHash string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	_, err := s.client.Auth().SignIn(ctx, phoneNumber, code, phoneCodeHash)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordAuthNeeded) || tgerr.Is(err, "SESSION_PASSWORD_NEEDED") {
			return telegramerrors.ErrPasswordNeeded
		}
		return err
	}

	s.logger.Info().Str("phone", utils.MaskPhoneNumber(phoneNumber)).Msg("signed in")
	return nil
}

// CheckPassword completes login with the two-factor cloud password
func (s *remoteSession) CheckPassword(ctx context.Context, password string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	if _, err := s.client.Auth().Password(ctx, password); err != nil {
		if errors.Is(err, auth.ErrPasswordInvalid) || tgerr.Is(err, "PASSWORD_HASH_INVALID") {
			return telegramerrors.ErrPasswordInvalid
		}
		return err
	}

	s.logger.Info().Msg("two-factor password accepted")
	return nil
}

// IsAuthorized reports whether the session is logged in
func (s *remoteSession) IsAuthorized(ctx context.Context) (bool, error) {
	if err := s.wait(ctx); err != nil {
		return false, err
	}

	status, err := s.client.Auth().Status(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get auth status: %w", err)
	}
	return status.Authorized, nil
}
