package errors

import (
	pkgerrors "github.com/thecurioussailor/telegramAPI/pkg/errors"
)

var (
	ErrInvalidCredentials = pkgerrors.NewValidationError("Invalid Credentials")
	ErrWrongPassword      = pkgerrors.NewPermissionError("Invalid Credentials")
	ErrMissingToken       = pkgerrors.NewValidationError("Invalid Token")
	ErrUnauthorized       = pkgerrors.NewUnauthorizedError("Unauthorized")
)
