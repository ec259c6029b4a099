package telegram

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"

	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/entities"
	telegramerrors "github.com/thecurioussailor/telegramAPI/internal/domain/telegram/errors"
)

// CreateChannel creates a broadcast channel owned by the session user
func (s *remoteSession) CreateChannel(ctx context.Context, title, about string) (*entities.CreatedChannel, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	updates, err := s.api.ChannelsCreateChannel(ctx, &tg.ChannelsCreateChannelRequest{
		Broadcast: true,
		Title:     title,
		About:     about,
	})
	if err != nil {
		return nil, err
	}

	created, err := createdChannelFromUpdates(updates)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("channel_id", created.ID).Str("title", created.Title).Msg("channel created")
	return created, nil
}

// ResolveUser resolves a username to a user or bot.
// Unknown usernames and usernames of chats yield ErrRemoteUserNotFound.
func (s *remoteSession) ResolveUser(ctx context.Context, username string) (*entities.RemoteUser, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	resolved, err := s.api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{
		Username: username,
	})
	if err != nil {
		if tgerr.Is(err, "USERNAME_NOT_OCCUPIED", "USERNAME_INVALID") {
			return nil, telegramerrors.ErrRemoteUserNotFound
		}
		return nil, err
	}

	return userFromResolved(resolved)
}

// PromoteBot grants the bot the channel admin rights used for moderation and posting
func (s *remoteSession) PromoteBot(
	ctx context.Context,
	channel *entities.RemoteChannel,
	bot *entities.RemoteUser,
	rank string,
) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	if _, err := s.api.ChannelsEditAdmin(ctx, &tg.ChannelsEditAdminRequest{
		Channel:     inputChannel(channel),
		UserID:      inputUser(bot),
		AdminRights: botAdminRights(),
		Rank:        rank,
	}); err != nil {
		return err
	}

	s.logger.Info().Int64("channel_id", channel.ID).Str("bot", bot.Username).Msg("bot promoted to admin")
	return nil
}

// InviteUser adds the user to the channel
func (s *remoteSession) InviteUser(ctx context.Context, channel *entities.RemoteChannel, user *entities.RemoteUser) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	if _, err := s.api.ChannelsInviteToChannel(ctx, &tg.ChannelsInviteToChannelRequest{
		Channel: inputChannel(channel),
		Users:   []tg.InputUserClass{inputUser(user)},
	}); err != nil {
		return err
	}

	s.logger.Info().Int64("channel_id", channel.ID).Int64("user_id", user.ID).Msg("user invited")
	return nil
}

// KickUser removes the user without a time limit
func (s *remoteSession) KickUser(ctx context.Context, channel *entities.RemoteChannel, user *entities.RemoteUser) error {
	return s.editBanned(ctx, channel, user, kickRights(), "user removed")
}

// BanUser removes the user and restricts every participant right
func (s *remoteSession) BanUser(ctx context.Context, channel *entities.RemoteChannel, user *entities.RemoteUser) error {
	return s.editBanned(ctx, channel, user, banRights(), "user banned")
}

// UnbanUser clears every restriction of the user
func (s *remoteSession) UnbanUser(ctx context.Context, channel *entities.RemoteChannel, user *entities.RemoteUser) error {
	return s.editBanned(ctx, channel, user, tg.ChatBannedRights{}, "user unbanned")
}

func (s *remoteSession) editBanned(
	ctx context.Context,
	channel *entities.RemoteChannel,
	user *entities.RemoteUser,
	rights tg.ChatBannedRights,
	msg string,
) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	if _, err := s.api.ChannelsEditBanned(ctx, &tg.ChannelsEditBannedRequest{
		Channel:      inputChannel(channel),
		Participant:  &tg.InputPeerUser{UserID: user.ID, AccessHash: user.AccessHash},
		BannedRights: rights,
	}); err != nil {
		return err
	}

	s.logger.Info().Int64("channel_id", channel.ID).Int64("user_id", user.ID).Msg(msg)
	return nil
}

func createdChannelFromUpdates(updates tg.UpdatesClass) (*entities.CreatedChannel, error) {
	var chats []tg.ChatClass
	switch u := updates.(type) {
	case *tg.Updates:
		chats = u.Chats
	case *tg.UpdatesCombined:
		chats = u.Chats
	default:
		return nil, fmt.Errorf("%w: updates %T", telegramerrors.ErrUnexpectedResponse, updates)
	}

	if len(chats) == 0 {
		return nil, fmt.Errorf("%w: no chats in updates", telegramerrors.ErrUnexpectedResponse)
	}

	ch, ok := chats[0].(*tg.Channel)
	if !ok {
		return nil, fmt.Errorf("%w: chat %T", telegramerrors.ErrUnexpectedResponse, chats[0])
	}

	return &entities.CreatedChannel{
		ID:         ch.ID,
		AccessHash: ch.AccessHash,
		Title:      ch.Title,
	}, nil
}

func userFromResolved(resolved *tg.ContactsResolvedPeer) (*entities.RemoteUser, error) {
	peer, ok := resolved.Peer.(*tg.PeerUser)
	if !ok {
		return nil, telegramerrors.ErrRemoteUserNotFound
	}

	for _, u := range resolved.Users {
		user, ok := u.(*tg.User)
		if !ok || user.ID != peer.UserID {
			continue
		}
		return &entities.RemoteUser{
			ID:         user.ID,
			AccessHash: user.AccessHash,
			Username:   user.Username,
			Bot:        user.Bot,
		}, nil
	}

	return nil, telegramerrors.ErrRemoteUserNotFound
}

func inputChannel(ch *entities.RemoteChannel) *tg.InputChannel {
	return &tg.InputChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash}
}

func inputUser(u *entities.RemoteUser) *tg.InputUser {
	return &tg.InputUser{UserID: u.ID, AccessHash: u.AccessHash}
}

func botAdminRights() tg.ChatAdminRights {
	return tg.ChatAdminRights{
		ChangeInfo:     true,
		PostMessages:   true,
		EditMessages:   true,
		DeleteMessages: true,
		BanUsers:       true,
		InviteUsers:    true,
		PinMessages:    true,
		ManageCall:     true,
		Other:          true,
	}
}

func kickRights() tg.ChatBannedRights {
	return tg.ChatBannedRights{
		ViewMessages: true,
		SendMessages: true,
		SendMedia:    true,
		SendStickers: true,
		SendGifs:     true,
		SendGames:    true,
		SendInline:   true,
		EmbedLinks:   true,
	}
}

func banRights() tg.ChatBannedRights {
	rights := kickRights()
	rights.SendPolls = true
	rights.ChangeInfo = true
	rights.InviteUsers = true
	rights.PinMessages = true
	return rights
}
