package errors

import (
	pkgerrors "github.com/thecurioussailor/telegramAPI/pkg/errors"
)

var (
	ErrUserNotFound      = pkgerrors.NewNotFoundError("User not found")
	ErrUserAlreadyExists = pkgerrors.NewPermissionError("User already exists")
)
