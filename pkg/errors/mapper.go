package errors

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// InternalServerErrorMessage is returned for errors that carry no client-facing message
const InternalServerErrorMessage = "Internal Server Error"

// Mapper turns use case errors into a status and the message sent in the error body.
type Mapper struct {
	logger zerolog.Logger
}

func NewMapper(logger zerolog.Logger) *Mapper {
	return &Mapper{logger: logger}
}

// MapErrorToHTTP returns the status and client message for err.
// Untyped errors are logged and hidden behind InternalServerErrorMessage.
func (m *Mapper) MapErrorToHTTP(err error) (int, string) {
	if err == nil {
		return fasthttp.StatusOK, ""
	}

	var typed typedError
	if !errors.As(err, &typed) {
		m.logger.Error().Err(err).Msg("unmapped error")
		return fasthttp.StatusInternalServerError, InternalServerErrorMessage
	}

	status := typed.StatusCode()
	if status >= fasthttp.StatusInternalServerError {
		m.logger.Error().Err(err).Int("status", status).Msg("server error")
	}
	return status, typed.Error()
}
