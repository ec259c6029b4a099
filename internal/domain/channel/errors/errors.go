package errors

import (
	pkgerrors "github.com/thecurioussailor/telegramAPI/pkg/errors"
)

var (
	ErrChannelNotFound = pkgerrors.NewPermissionError("Channel not found or you don't have permission")
)
