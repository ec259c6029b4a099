package business

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	channelentities "github.com/thecurioussailor/telegramAPI/internal/domain/channel/entities"
	channelerrors "github.com/thecurioussailor/telegramAPI/internal/domain/channel/errors"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/entities"
	telegramerrors "github.com/thecurioussailor/telegramAPI/internal/domain/telegram/errors"
	userentities "github.com/thecurioussailor/telegramAPI/internal/domain/user/entities"
	"github.com/thecurioussailor/telegramAPI/internal/infrastructure/metrics"
	pkgerrors "github.com/thecurioussailor/telegramAPI/pkg/errors"
)

const (
	ownerID   = "11111111-1111-1111-1111-111111111111"
	channelID = "22222222-2222-2222-2222-222222222222"
)

type fixture struct {
	users     *mockUserRepository
	channels  *mockChannelRepository
	runner    *mockRunner
	session   *mockSession
	bot       *mockModerator
	publisher *mockPublisher
	uc        *UseCase
}

func newFixture(user *userentities.User, channels ...*channelentities.Channel) *fixture {
	session := &mockSession{
		codeHash: "code-hash",
		created:  &entities.CreatedChannel{ID: 1234567890, AccessHash: 1, Title: "News"},
		users: map[string]*entities.RemoteUser{
			"netly_bot": {ID: 100, AccessHash: 10, Username: "netly_bot", Bot: true},
			"alice":     {ID: 200, AccessHash: 20, Username: "alice"},
		},
		channel: &entities.RemoteChannel{ID: 1234567890, AccessHash: 1, Title: "News"},
	}

	f := &fixture{
		users:     newMockUserRepository(user),
		channels:  newMockChannelRepository(channels...),
		runner:    &mockRunner{session: session},
		session:   session,
		bot:       &mockModerator{},
		publisher: &mockPublisher{},
	}
	f.uc = NewUseCase(
		f.users,
		f.channels,
		f.runner,
		f.bot,
		f.publisher,
		metrics.GetDefaultMetrics(),
		zerolog.Nop(),
	).(*UseCase)

	return f
}

func unlinkedUser() *userentities.User {
	return &userentities.User{ID: ownerID, Username: "owner"}
}

func pendingUser() *userentities.User {
	return &userentities.User{
		ID:            ownerID,
		Username:      "owner",
		Session:       []byte("pending-session"),
		PhoneNumber:   "+15550001111",
		PhoneCodeHash: "code-hash",
	}
}

func linkedUser() *userentities.User {
	u := pendingUser()
	u.Session = []byte("linked-session")
	u.Authenticated = true
	return u
}

func ownedChannel(hasBot bool) *channelentities.Channel {
	return &channelentities.Channel{
		ID:         channelID,
		TelegramID: "1234567890",
		Title:      "News",
		OwnerID:    ownerID,
		HasBot:     hasBot,
	}
}

func TestRequestOTP(t *testing.T) {
	f := newFixture(unlinkedUser())
	f.runner.returned = []byte("fresh-session")

	err := f.uc.RequestOTP(context.Background(), ownerID, " +15550001111 ")
	require.NoError(t, err)

	stored := f.users.get(ownerID)
	require.Equal(t, []byte("fresh-session"), stored.Session)
	require.Equal(t, "+15550001111", stored.PhoneNumber)
	require.Equal(t, "code-hash", stored.PhoneCodeHash)
	require.Equal(t, userentities.LinkStateOTPRequested, stored.LinkState())
	require.Nil(t, f.runner.lastSession)
}

func TestRequestOTP_PhoneRequired(t *testing.T) {
	f := newFixture(unlinkedUser())

	err := f.uc.RequestOTP(context.Background(), ownerID, "")
	require.ErrorIs(t, err, telegramerrors.ErrPhoneRequired)
	require.Zero(t, f.runner.runs)
}

func TestRequestOTP_RemoteFailure(t *testing.T) {
	f := newFixture(unlinkedUser())
	f.session.sendCodeErr = errors.New("PHONE_NUMBER_INVALID")

	err := f.uc.RequestOTP(context.Background(), ownerID, "+15550001111")

	var internalErr *pkgerrors.InternalError
	require.ErrorAs(t, err, &internalErr)
	require.Equal(t, userentities.LinkStateUnlinked, f.users.get(ownerID).LinkState())
}

func TestVerifyCode_BeforeRequestOTP(t *testing.T) {
	for _, code := range []string{"", "000000", "12345"} {
		f := newFixture(unlinkedUser())

		err := f.uc.VerifyCode(context.Background(), ownerID, code)
		require.ErrorIs(t, err, telegramerrors.ErrOTPNotRequested)
		require.Zero(t, f.runner.runs)
	}
}

func TestVerifyCode_InvalidCode(t *testing.T) {
	f := newFixture(pendingUser())
	f.session.signInErr = errors.New("PHONE_CODE_INVALID")

	err := f.uc.VerifyCode(context.Background(), ownerID, "000000")
	require.ErrorIs(t, err, telegramerrors.ErrInvalidCode)
	require.Equal(t, "Invalid verification code", err.Error())
	require.False(t, f.users.get(ownerID).Authenticated)
}

func TestVerifyCode_Success(t *testing.T) {
	f := newFixture(pendingUser())
	f.runner.returned = []byte("signed-in-session")

	err := f.uc.VerifyCode(context.Background(), ownerID, "12345")
	require.NoError(t, err)

	stored := f.users.get(ownerID)
	require.True(t, stored.Authenticated)
	require.Equal(t, []byte("signed-in-session"), stored.Session)
	require.Equal(t, []byte("pending-session"), f.runner.lastSession)
}

// TestTwoFactorLogin tests the password step after the code reports two-factor auth
func TestTwoFactorLogin(t *testing.T) {
	f := newFixture(pendingUser())
	f.session.signInErr = telegramerrors.ErrPasswordNeeded

	err := f.uc.VerifyCode(context.Background(), ownerID, "12345")
	require.ErrorIs(t, err, telegramerrors.ErrTwoFactorEnabled)
	require.False(t, f.users.get(ownerID).Authenticated)

	f.session.passwordErr = telegramerrors.ErrPasswordInvalid
	err = f.uc.SubmitPassword(context.Background(), ownerID, "wrong")
	require.ErrorIs(t, err, telegramerrors.ErrInvalidPassword)

	f.session.passwordErr = nil
	err = f.uc.SubmitPassword(context.Background(), ownerID, "correct")
	require.NoError(t, err)
	require.True(t, f.users.get(ownerID).Authenticated)
	require.Equal(t, 2, f.session.passwords)
}

func TestSubmitPassword_Preconditions(t *testing.T) {
	f := newFixture(unlinkedUser())
	err := f.uc.SubmitPassword(context.Background(), ownerID, "secret")
	require.ErrorIs(t, err, telegramerrors.ErrOTPNotRequested)

	f = newFixture(pendingUser())
	err = f.uc.SubmitPassword(context.Background(), ownerID, "")
	require.ErrorIs(t, err, telegramerrors.ErrPasswordRequired)
	require.Zero(t, f.runner.runs)
}

func TestCreateChannel_RequiresLinkedAccount(t *testing.T) {
	f := newFixture(pendingUser())

	_, err := f.uc.CreateChannel(context.Background(), ownerID, "Test", "")
	require.ErrorIs(t, err, telegramerrors.ErrNotVerified)
	require.Zero(t, f.runner.runs)
}

func TestCreateChannel_AuthenticatedWithoutSession(t *testing.T) {
	f := newFixture(&userentities.User{ID: ownerID, Username: "owner", Authenticated: true})

	_, err := f.uc.CreateChannel(context.Background(), ownerID, "Test", "")
	require.ErrorIs(t, err, telegramerrors.ErrNotVerified)
	require.Zero(t, f.runner.runs)
}

func TestCreateChannel(t *testing.T) {
	f := newFixture(linkedUser())

	channel, err := f.uc.CreateChannel(context.Background(), ownerID, "Test", "about")
	require.NoError(t, err)
	require.Equal(t, "1234567890", channel.TelegramID)
	require.Equal(t, "Test", channel.Title)
	require.Equal(t, "about", channel.Description)
	require.Equal(t, ownerID, channel.OwnerID)
	require.False(t, channel.HasBot)

	stored, err := f.channels.GetOwned(context.Background(), channel.ID, ownerID)
	require.NoError(t, err)
	require.Equal(t, channel.TelegramID, stored.TelegramID)

	require.Len(t, f.publisher.events, 1)
	require.Equal(t, entities.EventChannelCreated, f.publisher.events[0].Type)
	require.Equal(t, channel.ID, f.publisher.events[0].ChannelID)
	require.False(t, f.publisher.events[0].OccurredAt.IsZero())
}

func TestCreateChannel_Errors(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		setup   func(f *fixture)
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing name",
			title:   "  ",
			wantErr: telegramerrors.ErrChannelNameRequired,
		},
		{
			name:    "session logged out",
			title:   "Test",
			setup:   func(f *fixture) { f.session.unauthorized = true },
			wantErr: telegramerrors.ErrTelegramUnauthorized,
		},
		{
			name:    "no channel in response",
			title:   "Test",
			setup:   func(f *fixture) { f.session.createErr = telegramerrors.ErrUnexpectedResponse },
			wantErr: telegramerrors.ErrChannelInfoMissing,
		},
		{
			name:    "remote failure",
			title:   "Test",
			setup:   func(f *fixture) { f.session.createErr = errors.New("CHANNELS_TOO_MUCH") },
			wantMsg: "Failed to create channel: CHANNELS_TOO_MUCH",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(linkedUser())
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.uc.CreateChannel(context.Background(), ownerID, tt.title, "")
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				var upstreamErr *pkgerrors.UpstreamError
				require.ErrorAs(t, err, &upstreamErr)
				require.Equal(t, tt.wantMsg, err.Error())
			}
			require.Empty(t, f.publisher.events)
		})
	}
}

func TestListChannels_Empty(t *testing.T) {
	f := newFixture(linkedUser())

	channels, err := f.uc.ListChannels(context.Background(), ownerID)
	require.NoError(t, err)
	require.NotNil(t, channels)
	require.Empty(t, channels)
}

func TestListChannels_OwnerScoped(t *testing.T) {
	foreign := ownedChannel(false)
	foreign.ID = "33333333-3333-3333-3333-333333333333"
	foreign.OwnerID = "someone-else"
	f := newFixture(linkedUser(), ownedChannel(false), foreign)

	channels, err := f.uc.ListChannels(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	require.Equal(t, channelID, channels[0].ID)
}

func TestAddBot_UsernameWithoutAt(t *testing.T) {
	f := newFixture(linkedUser(), ownedChannel(false))

	_, err := f.uc.AddBot(context.Background(), ownerID, channelID, "netly_bot")
	require.ErrorIs(t, err, telegramerrors.ErrBotUsernameFormat)
	require.Zero(t, f.runner.runs)
}

func TestAddBot_FieldsRequired(t *testing.T) {
	f := newFixture(linkedUser(), ownedChannel(false))

	_, err := f.uc.AddBot(context.Background(), ownerID, "", "@netly_bot")
	require.ErrorIs(t, err, telegramerrors.ErrAddBotFieldsRequired)
	require.Zero(t, f.runner.runs)
}

func TestAddBot(t *testing.T) {
	f := newFixture(linkedUser(), ownedChannel(false))

	channel, err := f.uc.AddBot(context.Background(), ownerID, channelID, "@netly_bot")
	require.NoError(t, err)
	require.True(t, channel.HasBot)
	require.NotNil(t, channel.BotUsername)
	require.Equal(t, "@netly_bot", *channel.BotUsername)

	require.Equal(t, []string{"netly_bot"}, f.session.resolved)
	require.Equal(t, []string{"1234567890"}, f.session.foundIDs)
	require.Equal(t, "Channel Bot", f.session.rank)

	require.Len(t, f.publisher.events, 1)
	require.Equal(t, entities.EventBotAdded, f.publisher.events[0].Type)
}

func TestAddBot_RemoteLookups(t *testing.T) {
	t.Run("bot not found", func(t *testing.T) {
		f := newFixture(linkedUser(), ownedChannel(false))

		_, err := f.uc.AddBot(context.Background(), ownerID, channelID, "@missing_bot")
		require.ErrorIs(t, err, telegramerrors.ErrBotNotFound)
	})

	t.Run("channel not in dialogs", func(t *testing.T) {
		f := newFixture(linkedUser(), ownedChannel(false))
		f.session.channel = nil

		_, err := f.uc.AddBot(context.Background(), ownerID, channelID, "@netly_bot")
		require.ErrorIs(t, err, telegramerrors.ErrBotChannelNotInDialogs)
		require.Zero(t, f.session.promoted)
	})

	t.Run("promotion rejected", func(t *testing.T) {
		f := newFixture(linkedUser(), ownedChannel(false))
		f.session.promoteErr = errors.New("CHAT_ADMIN_REQUIRED")

		_, err := f.uc.AddBot(context.Background(), ownerID, channelID, "@netly_bot")
		require.EqualError(t, err, "Failed to add bot to channel: CHAT_ADMIN_REQUIRED")

		stored, getErr := f.channels.GetOwned(context.Background(), channelID, ownerID)
		require.NoError(t, getErr)
		require.False(t, stored.HasBot)
	})
}

// TestChannelOperations_NotOwned tests that foreign and malformed channel ids are forbidden
func TestChannelOperations_NotOwned(t *testing.T) {
	foreign := ownedChannel(true)
	foreign.OwnerID = "someone-else"

	for _, id := range []string{channelID, "not-a-uuid"} {
		f := newFixture(linkedUser(), foreign)
		ctx := context.Background()

		_, err := f.uc.AddBot(ctx, ownerID, id, "@netly_bot")
		require.ErrorIs(t, err, channelerrors.ErrChannelNotFound)

		require.ErrorIs(t, f.uc.AddUser(ctx, ownerID, id, "alice"), channelerrors.ErrChannelNotFound)
		require.ErrorIs(t, f.uc.RemoveUser(ctx, ownerID, id, "alice"), channelerrors.ErrChannelNotFound)

		_, err = f.uc.BanUser(ctx, ownerID, id, "alice")
		require.ErrorIs(t, err, channelerrors.ErrChannelNotFound)

		_, err = f.uc.UnbanUser(ctx, ownerID, id, "alice")
		require.ErrorIs(t, err, channelerrors.ErrChannelNotFound)

		require.Zero(t, f.runner.runs)
	}
}

func TestAddUser(t *testing.T) {
	f := newFixture(linkedUser(), ownedChannel(false))

	err := f.uc.AddUser(context.Background(), ownerID, channelID, "@alice")
	require.NoError(t, err)
	require.Equal(t, 1, f.session.invited)
	require.Equal(t, []string{"alice"}, f.session.resolved)

	require.Len(t, f.publisher.events, 1)
	require.Equal(t, entities.EventUserAdded, f.publisher.events[0].Type)
	require.Equal(t, "alice", f.publisher.events[0].Username)
}

func TestAddUser_Errors(t *testing.T) {
	t.Run("fields required", func(t *testing.T) {
		f := newFixture(linkedUser(), ownedChannel(false))
		err := f.uc.AddUser(context.Background(), ownerID, channelID, "@")
		require.ErrorIs(t, err, telegramerrors.ErrMemberFieldsRequired)
	})

	t.Run("user not found", func(t *testing.T) {
		f := newFixture(linkedUser(), ownedChannel(false))
		err := f.uc.AddUser(context.Background(), ownerID, channelID, "ghost")
		require.ErrorIs(t, err, telegramerrors.ErrUserNotFound)
	})

	t.Run("channel not in dialogs", func(t *testing.T) {
		f := newFixture(linkedUser(), ownedChannel(false))
		f.session.channel = nil
		err := f.uc.AddUser(context.Background(), ownerID, channelID, "alice")
		require.ErrorIs(t, err, telegramerrors.ErrChannelNotInDialogs)
	})

	t.Run("not linked", func(t *testing.T) {
		f := newFixture(pendingUser(), ownedChannel(false))
		err := f.uc.AddUser(context.Background(), ownerID, channelID, "alice")
		require.ErrorIs(t, err, telegramerrors.ErrNotVerified)
	})
}

func TestRemoveUser_RemoteFailure(t *testing.T) {
	f := newFixture(linkedUser(), ownedChannel(false))
	f.session.kickErr = errors.New("USER_NOT_PARTICIPANT")

	err := f.uc.RemoveUser(context.Background(), ownerID, channelID, "alice")
	require.EqualError(t, err, "Failed to remove user from channel: USER_NOT_PARTICIPANT")
	require.Empty(t, f.publisher.events)
}

func TestBanUser_RequiresBot(t *testing.T) {
	f := newFixture(linkedUser(), ownedChannel(false))

	_, err := f.uc.BanUser(context.Background(), ownerID, channelID, "alice")
	require.ErrorIs(t, err, telegramerrors.ErrBotNotAdded)
	require.Zero(t, f.runner.runs)
}

func TestBanUser_BotApplies(t *testing.T) {
	f := newFixture(linkedUser(), ownedChannel(true))
	f.bot.ok = true

	result, err := f.uc.BanUser(context.Background(), ownerID, channelID, "alice")
	require.NoError(t, err)
	require.Equal(t, entities.MethodBotAPI, result.AppliedBy)
	require.Len(t, result.Steps, 1)
	require.Equal(t, []string{"-1001234567890"}, f.bot.chatIDs)
	require.Zero(t, f.session.banned)

	require.Len(t, f.publisher.events, 1)
	require.Equal(t, entities.EventUserBanned, f.publisher.events[0].Type)
	require.Equal(t, entities.MethodBotAPI, f.publisher.events[0].Method)
}

// TestBanUser_FallsBackToSession tests the session step after the bot declines or errors
func TestBanUser_FallsBackToSession(t *testing.T) {
	tests := []struct {
		name   string
		botOK  bool
		botErr error
	}{
		{name: "bot declines", botOK: false},
		{name: "bot errors", botErr: errors.New("Bad Request: not enough rights")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(linkedUser(), ownedChannel(true))
			f.bot.ok = tt.botOK
			f.bot.err = tt.botErr

			result, err := f.uc.BanUser(context.Background(), ownerID, channelID, "alice")
			require.NoError(t, err)
			require.Equal(t, entities.MethodSession, result.AppliedBy)
			require.Equal(t, 1, f.bot.calls)
			require.Equal(t, 1, f.session.banned)

			require.Len(t, result.Steps, 2)
			require.Equal(t, entities.OutcomeDeclined, result.Steps[0].Outcome)
			require.Equal(t, entities.OutcomeApplied, result.Steps[1].Outcome)
		})
	}
}

func TestBanUser_BotTokenMissing(t *testing.T) {
	f := newFixture(linkedUser(), ownedChannel(true))
	f.bot.err = telegramerrors.ErrBotNotConfigured

	_, err := f.uc.BanUser(context.Background(), ownerID, channelID, "alice")
	require.ErrorIs(t, err, telegramerrors.ErrBotTokenMissing)
	require.Zero(t, f.session.banned)
}

func TestBanUser_SessionFailure(t *testing.T) {
	f := newFixture(linkedUser(), ownedChannel(true))
	f.session.banErr = errors.New("USER_ADMIN_INVALID")

	_, err := f.uc.BanUser(context.Background(), ownerID, channelID, "alice")
	require.EqualError(t, err, "Failed to ban user from channel: USER_ADMIN_INVALID")
	require.Empty(t, f.publisher.events)
}

func TestUnbanUser(t *testing.T) {
	f := newFixture(linkedUser(), ownedChannel(true))

	result, err := f.uc.UnbanUser(context.Background(), ownerID, channelID, "alice")
	require.NoError(t, err)
	require.Equal(t, entities.ActionUnban, result.Action)
	require.Equal(t, entities.MethodSession, result.AppliedBy)
	require.Equal(t, 1, f.session.unbanned)
	require.Zero(t, f.session.banned)
}

func TestUnbanUser_SessionFailure(t *testing.T) {
	f := newFixture(linkedUser(), ownedChannel(true))
	f.session.unbanErr = errors.New("CHANNEL_PRIVATE")

	_, err := f.uc.UnbanUser(context.Background(), ownerID, channelID, "alice")
	require.EqualError(t, err, "Failed to unban user from channel: CHANNEL_PRIVATE")
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture(linkedUser(), ownedChannel(false))
	f.publisher.err = errors.New("broker down")

	err := f.uc.AddUser(context.Background(), ownerID, channelID, "alice")
	require.NoError(t, err)
	require.Len(t, f.publisher.events, 1)
}
