package dto

import (
	channelentities "github.com/thecurioussailor/telegramAPI/internal/domain/channel/entities"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/entities"
)

// RequestOTPRequest is the body of POST /telegram/requestOTP
type RequestOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// SendCodeRequest is the body of POST /telegram/sendCode
type SendCodeRequest struct {
	Code string `json:"code"`
}

// SendPasswordRequest is the body of POST /telegram/sendPassword
type SendPasswordRequest struct {
	Password string `json:"password"`
}

// CreateChannelRequest is the body of POST /telegram/createChannel
type CreateChannelRequest struct {
	ChannelName        string `json:"channelName"`
	ChannelDescription string `json:"channelDescription"`
}

// AddBotRequest is the body of POST /telegram/addBot
type AddBotRequest struct {
	ChannelID   string `json:"channelId"`
	BotUsername string `json:"botUsername"`
}

// MemberRequest is the body of the add, remove, ban and unban routes
type MemberRequest struct {
	ChannelID string `json:"channelId"`
	Username  string `json:"username"`
}

// OTPUser identifies the user an OTP was requested for
type OTPUser struct {
	ID string `json:"id"`
}

// OTPResponse is returned by requestOTP
type OTPResponse struct {
	Message string  `json:"message"`
	User    OTPUser `json:"user"`
}

// LinkedUser is the user after a successful Telegram login
type LinkedUser struct {
	ID            string `json:"id"`
	Authenticated bool   `json:"authenticated"`
}

// VerificationResponse is returned by sendCode and sendPassword
type VerificationResponse struct {
	Message string     `json:"message"`
	User    LinkedUser `json:"user"`
}

// ChannelResponse carries a single channel
type ChannelResponse struct {
	Message string                   `json:"message"`
	Channel *channelentities.Channel `json:"channel"`
}

// ChannelsResponse carries the caller's channels
type ChannelsResponse struct {
	Message  string                    `json:"message"`
	Channels []channelentities.Channel `json:"channels"`
}

// ModerationResponse reports which method applied a ban or unban
type ModerationResponse struct {
	Message string                    `json:"message"`
	Method  entities.ModerationMethod `json:"method"`
}
