package http

import (
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/thecurioussailor/telegramAPI/internal/domain/auth/deps"
	"github.com/thecurioussailor/telegramAPI/internal/domain/auth/dto"
	autherrors "github.com/thecurioussailor/telegramAPI/internal/domain/auth/errors"
	pkgerrors "github.com/thecurioussailor/telegramAPI/pkg/errors"
	"github.com/thecurioussailor/telegramAPI/pkg/httputil"
)

// AuthHandler handles signup and signin requests
type AuthHandler struct {
	useCase deps.AuthService
	mapper  *pkgerrors.Mapper
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(useCase deps.AuthService, logger zerolog.Logger) *AuthHandler {
	l := logger.With().Str("handler", "auth").Logger()
	return &AuthHandler{
		useCase: useCase,
		mapper:  pkgerrors.NewMapper(l),
		logger:  l,
	}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(ctx *fasthttp.RequestCtx) {
	var req dto.CredentialsRequest
	if err := httputil.DecodeJSON(ctx, &req); err != nil {
		h.handleError(ctx, autherrors.ErrInvalidCredentials)
		return
	}

	token, err := h.useCase.Signup(ctx, req.Username, req.Password)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteJSON(ctx, fasthttp.StatusCreated, dto.TokenResponse{
		Message: "User created successfully",
		Token:   token,
	})
}

// Signin handles POST /auth/signin
func (h *AuthHandler) Signin(ctx *fasthttp.RequestCtx) {
	var req dto.CredentialsRequest
	if err := httputil.DecodeJSON(ctx, &req); err != nil {
		h.handleError(ctx, autherrors.ErrInvalidCredentials)
		return
	}

	token, err := h.useCase.Signin(ctx, req.Username, req.Password)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteJSON(ctx, fasthttp.StatusOK, dto.TokenResponse{
		Message: "Signin successful",
		Token:   token,
	})
}

func (h *AuthHandler) handleError(ctx *fasthttp.RequestCtx, err error) {
	status, message := h.mapper.MapErrorToHTTP(err)
	if status < fasthttp.StatusInternalServerError {
		h.logger.Warn().Err(err).Str("path", string(ctx.Path())).Int("status", status).Msg("auth request rejected")
	}
	httputil.WriteErrorResponse(ctx, message, status)
}
