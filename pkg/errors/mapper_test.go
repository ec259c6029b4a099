package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

func TestMapErrorToHTTP(t *testing.T) {
	mapper := NewMapper(zerolog.Nop())

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedMsg    string
	}{
		{"nil", nil, fasthttp.StatusOK, ""},
		{"validation", NewValidationError("Phone number required"), fasthttp.StatusBadRequest, "Phone number required"},
		{"wrapped validation", fmt.Errorf("handler: %w", NewValidationError("bad")), fasthttp.StatusBadRequest, "bad"},
		{"upstream", NewUpstreamError("Failed to create channel", errors.New("CHANNELS_TOO_MUCH")), fasthttp.StatusBadRequest, "Failed to create channel: CHANNELS_TOO_MUCH"},
		{"unauthorized", NewUnauthorizedError("Unauthorized"), fasthttp.StatusUnauthorized, "Unauthorized"},
		{"permission", NewPermissionError("User already exists"), fasthttp.StatusForbidden, "User already exists"},
		{"not found", NewNotFoundError("User not found"), fasthttp.StatusNotFound, "User not found"},
		{"internal", NewInternalError("Bot token not configured"), fasthttp.StatusInternalServerError, "Bot token not configured"},
		{"unknown", errors.New("dial tcp: refused"), fasthttp.StatusInternalServerError, InternalServerErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapper.MapErrorToHTTP(tt.err)
			if status != tt.expectedStatus {
				t.Errorf("status = %d, want %d", status, tt.expectedStatus)
			}
			if msg != tt.expectedMsg {
				t.Errorf("message = %q, want %q", msg, tt.expectedMsg)
			}
		})
	}
}

func TestIsTyped(t *testing.T) {
	if !IsTyped(fmt.Errorf("wrap: %w", NewNotFoundError("x"))) {
		t.Error("expected wrapped NotFoundError to be typed")
	}
	if IsTyped(errors.New("plain")) {
		t.Error("expected plain error not to be typed")
	}
	if IsTyped(nil) {
		t.Error("expected nil not to be typed")
	}
}

func TestUpstreamError_Unwrap(t *testing.T) {
	cause := errors.New("FLOOD_WAIT")
	err := NewUpstreamError("Failed to add user to channel", cause)
	if !errors.Is(err, cause) {
		t.Error("expected upstream error to unwrap to its cause")
	}
}
