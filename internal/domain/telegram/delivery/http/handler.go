package http

import (
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	authhttp "github.com/thecurioussailor/telegramAPI/internal/domain/auth/delivery/http"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/deps"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/dto"
	pkgerrors "github.com/thecurioussailor/telegramAPI/pkg/errors"
	"github.com/thecurioussailor/telegramAPI/pkg/httputil"
)

var errMalformedBody = pkgerrors.NewValidationError("Invalid request body")

// TelegramHandler handles the account linking and channel routes
type TelegramHandler struct {
	useCase deps.TelegramService
	mapper  *pkgerrors.Mapper
	logger  zerolog.Logger
}

// NewTelegramHandler creates a new telegram handler
func NewTelegramHandler(useCase deps.TelegramService, logger zerolog.Logger) *TelegramHandler {
	l := logger.With().Str("handler", "telegram").Logger()
	return &TelegramHandler{
		useCase: useCase,
		mapper:  pkgerrors.NewMapper(l),
		logger:  l,
	}
}

// RequestOTP handles POST /telegram/requestOTP
func (h *TelegramHandler) RequestOTP(ctx *fasthttp.RequestCtx) {
	var req dto.RequestOTPRequest
	if !h.decode(ctx, &req) {
		return
	}

	userID := authhttp.UserID(ctx)
	if err := h.useCase.RequestOTP(ctx, userID, req.PhoneNumber); err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteJSON(ctx, fasthttp.StatusOK, dto.OTPResponse{
		Message: "OTP sent successfully",
		User:    dto.OTPUser{ID: userID},
	})
}

// SendCode handles POST /telegram/sendCode
func (h *TelegramHandler) SendCode(ctx *fasthttp.RequestCtx) {
	var req dto.SendCodeRequest
	if !h.decode(ctx, &req) {
		return
	}

	userID := authhttp.UserID(ctx)
	if err := h.useCase.VerifyCode(ctx, userID, req.Code); err != nil {
		h.handleError(ctx, err)
		return
	}

	h.writeLinked(ctx, userID)
}

// SendPassword handles POST /telegram/sendPassword
func (h *TelegramHandler) SendPassword(ctx *fasthttp.RequestCtx) {
	var req dto.SendPasswordRequest
	if !h.decode(ctx, &req) {
		return
	}

	userID := authhttp.UserID(ctx)
	if err := h.useCase.SubmitPassword(ctx, userID, req.Password); err != nil {
		h.handleError(ctx, err)
		return
	}

	h.writeLinked(ctx, userID)
}

// CreateChannel handles POST /telegram/createChannel
func (h *TelegramHandler) CreateChannel(ctx *fasthttp.RequestCtx) {
	var req dto.CreateChannelRequest
	if !h.decode(ctx, &req) {
		return
	}

	channel, err := h.useCase.CreateChannel(ctx, authhttp.UserID(ctx), req.ChannelName, req.ChannelDescription)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteJSON(ctx, fasthttp.StatusCreated, dto.ChannelResponse{
		Message: "Channel created successfully",
		Channel: channel,
	})
}

// ListChannels handles POST /telegram/listChannels
func (h *TelegramHandler) ListChannels(ctx *fasthttp.RequestCtx) {
	channels, err := h.useCase.ListChannels(ctx, authhttp.UserID(ctx))
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteJSON(ctx, fasthttp.StatusOK, dto.ChannelsResponse{
		Message:  "Channels fetched successfully",
		Channels: channels,
	})
}

// AddBot handles POST /telegram/addBot
func (h *TelegramHandler) AddBot(ctx *fasthttp.RequestCtx) {
	var req dto.AddBotRequest
	if !h.decode(ctx, &req) {
		return
	}

	channel, err := h.useCase.AddBot(ctx, authhttp.UserID(ctx), req.ChannelID, req.BotUsername)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteJSON(ctx, fasthttp.StatusOK, dto.ChannelResponse{
		Message: "Bot added as admin successfully",
		Channel: channel,
	})
}

// AddUser handles POST /telegram/addUser
func (h *TelegramHandler) AddUser(ctx *fasthttp.RequestCtx) {
	var req dto.MemberRequest
	if !h.decode(ctx, &req) {
		return
	}

	if err := h.useCase.AddUser(ctx, authhttp.UserID(ctx), req.ChannelID, req.Username); err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteJSON(ctx, fasthttp.StatusOK, httputil.MessageResponse{Message: "User added to channel successfully"})
}

// RemoveUser handles POST /telegram/removeUser
func (h *TelegramHandler) RemoveUser(ctx *fasthttp.RequestCtx) {
	var req dto.MemberRequest
	if !h.decode(ctx, &req) {
		return
	}

	if err := h.useCase.RemoveUser(ctx, authhttp.UserID(ctx), req.ChannelID, req.Username); err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteJSON(ctx, fasthttp.StatusOK, httputil.MessageResponse{Message: "User removed from channel successfully"})
}

// BanUser handles POST /telegram/banUser
func (h *TelegramHandler) BanUser(ctx *fasthttp.RequestCtx) {
	var req dto.MemberRequest
	if !h.decode(ctx, &req) {
		return
	}

	result, err := h.useCase.BanUser(ctx, authhttp.UserID(ctx), req.ChannelID, req.Username)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteJSON(ctx, fasthttp.StatusOK, dto.ModerationResponse{
		Message: "User banned from channel successfully",
		Method:  result.AppliedBy,
	})
}

// UnbanUser handles POST /telegram/unbanUser
func (h *TelegramHandler) UnbanUser(ctx *fasthttp.RequestCtx) {
	var req dto.MemberRequest
	if !h.decode(ctx, &req) {
		return
	}

	result, err := h.useCase.UnbanUser(ctx, authhttp.UserID(ctx), req.ChannelID, req.Username)
	if err != nil {
		h.handleError(ctx, err)
		return
	}

	httputil.WriteJSON(ctx, fasthttp.StatusOK, dto.ModerationResponse{
		Message: "User unbanned from channel successfully. They can now be added back or join with an invite link.",
		Method:  result.AppliedBy,
	})
}

func (h *TelegramHandler) writeLinked(ctx *fasthttp.RequestCtx, userID string) {
	httputil.WriteJSON(ctx, fasthttp.StatusOK, dto.VerificationResponse{
		Message: "Verification successful",
		User:    dto.LinkedUser{ID: userID, Authenticated: true},
	})
}

func (h *TelegramHandler) decode(ctx *fasthttp.RequestCtx, v interface{}) bool {
	if err := httputil.DecodeJSON(ctx, v); err != nil {
		h.logger.Debug().Err(err).Str("path", string(ctx.Path())).Msg("malformed request body")
		h.handleError(ctx, errMalformedBody)
		return false
	}
	return true
}

func (h *TelegramHandler) handleError(ctx *fasthttp.RequestCtx, err error) {
	status, message := h.mapper.MapErrorToHTTP(err)
	if status < fasthttp.StatusInternalServerError {
		h.logger.Warn().Err(err).Str("path", string(ctx.Path())).Int("status", status).Msg("telegram request rejected")
	}
	httputil.WriteErrorResponse(ctx, message, status)
}
