package http

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/thecurioussailor/telegramAPI/internal/domain/auth/deps"
	autherrors "github.com/thecurioussailor/telegramAPI/internal/domain/auth/errors"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/constants"
	"github.com/thecurioussailor/telegramAPI/internal/utils"
	"github.com/thecurioussailor/telegramAPI/pkg/httputil"
)

// Middleware authenticates requests with a bearer token
type Middleware struct {
	tokens deps.TokenService
	logger zerolog.Logger
}

// NewMiddleware creates a new auth middleware
func NewMiddleware(tokens deps.TokenService, logger zerolog.Logger) *Middleware {
	return &Middleware{
		tokens: tokens,
		logger: logger.With().Str("component", "auth_middleware").Logger(),
	}
}

// Handle rejects requests without a valid token and stores the user id
// under constants.UserIDContextKey for the wrapped handler.
func (m *Middleware) Handle(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		token := bearerToken(string(ctx.Request.Header.Peek(fasthttp.HeaderAuthorization)))
		if token == "" {
			httputil.WriteErrorResponse(ctx, autherrors.ErrMissingToken.Error(), fasthttp.StatusBadRequest)
			return
		}

		userID, err := m.tokens.Verify(token)
		if err != nil {
			m.logger.Warn().Err(err).
				Str("path", string(ctx.Path())).
				Str("token", utils.MaskSecret(token)).
				Msg("token verification failed")
			httputil.WriteErrorResponse(ctx, autherrors.ErrUnauthorized.Error(), fasthttp.StatusUnauthorized)
			return
		}

		ctx.SetUserValue(constants.UserIDContextKey, userID)
		next(ctx)
	}
}

// bearerToken returns the second space-separated field of the header
func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// UserID returns the authenticated user id stored by Middleware
func UserID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue(constants.UserIDContextKey).(string)
	return id
}
