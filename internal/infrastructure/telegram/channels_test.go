package telegram

import (
	"errors"
	"testing"

	"github.com/gotd/td/tg"

	telegramerrors "github.com/thecurioussailor/telegramAPI/internal/domain/telegram/errors"
)

// TestCreatedChannelFromUpdates tests extraction of the new channel from updates variants
func TestCreatedChannelFromUpdates(t *testing.T) {
	channel := &tg.Channel{ID: 1234567890, AccessHash: 42, Title: "News"}

	tests := []struct {
		name    string
		updates tg.UpdatesClass
		wantID  int64
		wantErr error
	}{
		{
			name:    "updates",
			updates: &tg.Updates{Chats: []tg.ChatClass{channel}},
			wantID:  1234567890,
		},
		{
			name:    "updates combined",
			updates: &tg.UpdatesCombined{Chats: []tg.ChatClass{channel}},
			wantID:  1234567890,
		},
		{
			name:    "no chats",
			updates: &tg.Updates{},
			wantErr: telegramerrors.ErrUnexpectedResponse,
		},
		{
			name:    "basic chat instead of channel",
			updates: &tg.Updates{Chats: []tg.ChatClass{&tg.Chat{ID: 1}}},
			wantErr: telegramerrors.ErrUnexpectedResponse,
		},
		{
			name:    "short updates",
			updates: &tg.UpdatesTooLong{},
			wantErr: telegramerrors.ErrUnexpectedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := createdChannelFromUpdates(tt.updates)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected error %v, got: %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if created.ID != tt.wantID || created.AccessHash != 42 || created.Title != "News" {
				t.Errorf("Unexpected channel: %+v", created)
			}
		})
	}
}

// TestUserFromResolved tests picking the resolved user out of the peer response
func TestUserFromResolved(t *testing.T) {
	resolved := &tg.ContactsResolvedPeer{
		Peer: &tg.PeerUser{UserID: 7},
		Users: []tg.UserClass{
			&tg.User{ID: 3, AccessHash: 30, Username: "other"},
			&tg.User{ID: 7, AccessHash: 70, Username: "netly_bot", Bot: true},
		},
	}

	user, err := userFromResolved(resolved)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if user.ID != 7 || user.AccessHash != 70 || !user.Bot || user.Username != "netly_bot" {
		t.Errorf("Unexpected user: %+v", user)
	}
}

// TestUserFromResolved_ChannelPeer tests that a username owned by a channel is not a user
func TestUserFromResolved_ChannelPeer(t *testing.T) {
	resolved := &tg.ContactsResolvedPeer{
		Peer:  &tg.PeerChannel{ChannelID: 9},
		Chats: []tg.ChatClass{&tg.Channel{ID: 9}},
	}

	if _, err := userFromResolved(resolved); !errors.Is(err, telegramerrors.ErrRemoteUserNotFound) {
		t.Errorf("Expected ErrRemoteUserNotFound, got: %v", err)
	}
}

func TestBanRights(t *testing.T) {
	kick := kickRights()
	if !kick.ViewMessages || !kick.SendMessages || kick.UntilDate != 0 {
		t.Errorf("Kick rights must block viewing permanently: %+v", kick)
	}
	if kick.InviteUsers || kick.PinMessages {
		t.Errorf("Kick rights must not restrict admin-level rights: %+v", kick)
	}

	ban := banRights()
	if !ban.ViewMessages || !ban.SendPolls || !ban.ChangeInfo || !ban.InviteUsers || !ban.PinMessages {
		t.Errorf("Ban rights incomplete: %+v", ban)
	}
}

func TestBotAdminRights(t *testing.T) {
	rights := botAdminRights()
	if !rights.BanUsers || !rights.PostMessages || !rights.InviteUsers {
		t.Errorf("Bot must be able to moderate and post: %+v", rights)
	}
	if rights.AddAdmins || rights.Anonymous {
		t.Errorf("Bot must not add admins or post anonymously: %+v", rights)
	}
}
