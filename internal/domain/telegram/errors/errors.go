package errors

import (
	"errors"

	pkgerrors "github.com/thecurioussailor/telegramAPI/pkg/errors"
)

// Results of remote calls, translated per operation by the use case
var (
	ErrRemoteUserNotFound    = errors.New("username not resolved to a user")
	ErrRemoteChannelNotFound = errors.New("channel not found in dialogs")
	ErrPasswordNeeded        = errors.New("two-factor password needed")
	ErrPasswordInvalid       = errors.New("two-factor password invalid")
	ErrUnexpectedResponse    = errors.New("unexpected telegram response")
	ErrBotNotConfigured      = errors.New("bot token not configured")
)

// Request validation
var (
	ErrPhoneRequired        = pkgerrors.NewValidationError("Phone number required")
	ErrCodeRequired         = pkgerrors.NewValidationError("Verification code is required")
	ErrPasswordRequired     = pkgerrors.NewValidationError("Password is required")
	ErrChannelNameRequired  = pkgerrors.NewValidationError("Channel name is required")
	ErrAddBotFieldsRequired = pkgerrors.NewValidationError("Channel ID and bot username are required")
	ErrBotUsernameFormat    = pkgerrors.NewValidationError("Bot username must start with @")
	ErrMemberFieldsRequired = pkgerrors.NewValidationError("Channel ID and username are required")
)

// Linkage and channel preconditions
var (
	ErrOTPNotRequested      = pkgerrors.NewValidationError("Please request OTP first")
	ErrTwoFactorEnabled     = pkgerrors.NewValidationError("Two-factor authentication is enabled. Please use another method.")
	ErrInvalidCode          = pkgerrors.NewValidationError("Invalid verification code")
	ErrInvalidPassword      = pkgerrors.NewValidationError("Invalid two-factor password")
	ErrNotVerified          = pkgerrors.NewValidationError("Please verify your Telegram account first")
	ErrTelegramUnauthorized = pkgerrors.NewUnauthorizedError("User not authorized on Telegram")
	ErrChannelInfoMissing   = pkgerrors.NewValidationError("Failed to retrieve channel information")
	ErrBotNotAdded          = pkgerrors.NewValidationError("Bot is not added to this channel. Please add the bot first.")
	ErrBotTokenMissing      = pkgerrors.NewInternalError("Bot token not configured")
)

// Remote lookups
var (
	ErrBotNotFound            = pkgerrors.NewNotFoundError("Bot not found. Please check the username.")
	ErrUserNotFound           = pkgerrors.NewNotFoundError("User not found. Please check the username.")
	ErrChannelNotInDialogs    = pkgerrors.NewNotFoundError("Channel not found in your dialogs")
	ErrBotChannelNotInDialogs = pkgerrors.NewNotFoundError("Channel not found in your dialogs. Make sure you have created it and it's accessible.")
)
