package business

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/deps"
	telegramerrors "github.com/thecurioussailor/telegramAPI/internal/domain/telegram/errors"
	userentities "github.com/thecurioussailor/telegramAPI/internal/domain/user/entities"
	usererrors "github.com/thecurioussailor/telegramAPI/internal/domain/user/errors"
	"github.com/thecurioussailor/telegramAPI/internal/utils"
	pkgerrors "github.com/thecurioussailor/telegramAPI/pkg/errors"
)

var errSendOTP = pkgerrors.NewInternalError("Failed to send OTP")

// RequestOTP starts a fresh Telegram login for the phone number and stores the pending state
func (uc *UseCase) RequestOTP(ctx context.Context, userID, phoneNumber string) error {
	start := time.Now()
	err := uc.requestOTP(ctx, userID, strings.TrimSpace(phoneNumber))
	uc.observe("request_otp", start, err)
	return err
}

func (uc *UseCase) requestOTP(ctx context.Context, userID, phoneNumber string) error {
	if phoneNumber == "" {
		return telegramerrors.ErrPhoneRequired
	}

	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	previous := user.LinkState()

	var codeHash string
	session, err := uc.runner.Run(ctx, nil, func(ctx context.Context, s deps.RemoteSession) error {
		hash, err := s.SendCode(ctx, phoneNumber)
		if err != nil {
			return err
		}
		codeHash = hash
		return nil
	})
	if err != nil {
		uc.logger.Error().Err(err).
			Str("user_id", userID).
			Str("phone", utils.MaskPhoneNumber(phoneNumber)).
			Msg("failed to send OTP")
		return errSendOTP
	}

	if err := uc.users.SaveOTPRequest(ctx, userID, session, phoneNumber, codeHash); err != nil {
		return err
	}

	uc.logger.Info().
		Str("user_id", userID).
		Str("phone", utils.MaskPhoneNumber(phoneNumber)).
		Str("previous_state", string(previous)).
		Msg("OTP requested")

	return nil
}

// VerifyCode signs in with the received code and marks the user as authenticated
func (uc *UseCase) VerifyCode(ctx context.Context, userID, code string) error {
	start := time.Now()
	err := uc.verifyCode(ctx, userID, strings.TrimSpace(code))
	uc.observe("verify_code", start, err)
	return err
}

func (uc *UseCase) verifyCode(ctx context.Context, userID, code string) error {
	user, err := uc.pendingUser(ctx, userID)
	if err != nil {
		return err
	}

	if code == "" {
		return telegramerrors.ErrCodeRequired
	}

	session, err := uc.runner.Run(ctx, user.Session, func(ctx context.Context, s deps.RemoteSession) error {
		return s.SignIn(ctx, user.PhoneNumber, code, user.PhoneCodeHash)
	})
	if err != nil {
		if errors.Is(err, telegramerrors.ErrPasswordNeeded) {
			uc.logger.Info().Str("user_id", userID).Msg("two-factor password required")
			return telegramerrors.ErrTwoFactorEnabled
		}
		uc.logger.Warn().Err(err).Str("user_id", userID).Msg("sign in failed")
		return telegramerrors.ErrInvalidCode
	}

	return uc.markAuthenticated(ctx, user, session)
}

// SubmitPassword completes a login that requires the two-factor cloud password
func (uc *UseCase) SubmitPassword(ctx context.Context, userID, password string) error {
	start := time.Now()
	err := uc.submitPassword(ctx, userID, password)
	uc.observe("submit_password", start, err)
	return err
}

func (uc *UseCase) submitPassword(ctx context.Context, userID, password string) error {
	user, err := uc.pendingUser(ctx, userID)
	if err != nil {
		return err
	}

	if password == "" {
		return telegramerrors.ErrPasswordRequired
	}

	session, err := uc.runner.Run(ctx, user.Session, func(ctx context.Context, s deps.RemoteSession) error {
		return s.CheckPassword(ctx, password)
	})
	if err != nil {
		if errors.Is(err, telegramerrors.ErrPasswordInvalid) {
			return telegramerrors.ErrInvalidPassword
		}
		uc.logger.Warn().Err(err).Str("user_id", userID).Msg("password check failed")
		return pkgerrors.NewUpstreamError("Failed to verify password", err)
	}

	return uc.markAuthenticated(ctx, user, session)
}

// pendingUser loads a user that has requested a login code
func (uc *UseCase) pendingUser(ctx context.Context, userID string) (*userentities.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return nil, telegramerrors.ErrOTPNotRequested
		}
		return nil, err
	}

	if !user.HasPendingOTP() {
		return nil, telegramerrors.ErrOTPNotRequested
	}

	return user, nil
}

func (uc *UseCase) markAuthenticated(ctx context.Context, user *userentities.User, session []byte) error {
	if len(session) == 0 {
		session = user.Session
	}

	if err := uc.users.MarkAuthenticated(ctx, user.ID, session); err != nil {
		return err
	}

	uc.logger.Info().
		Str("user_id", user.ID).
		Str("phone", utils.MaskPhoneNumber(user.PhoneNumber)).
		Msg("telegram account linked")

	return nil
}
