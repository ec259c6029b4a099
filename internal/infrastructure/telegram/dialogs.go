package telegram

import (
	"context"
	"errors"
	"fmt"

	"github.com/gotd/td/tg"

	channelentities "github.com/thecurioussailor/telegramAPI/internal/domain/channel/entities"
	"github.com/thecurioussailor/telegramAPI/internal/domain/telegram/entities"
	telegramerrors "github.com/thecurioussailor/telegramAPI/internal/domain/telegram/errors"
)

var errDialogsNotModified = errors.New("dialogs not modified")

// dialogCursor is the (offset_date, offset_id, offset_peer) triple of MessagesGetDialogs
type dialogCursor struct {
	date int
	id   int
	peer tg.InputPeerClass
}

// FindChannel pages through the caller's dialogs until a channel matching storedID shows up.
// Chats are matched page by page so the scan stops as soon as the channel is seen.
func (s *remoteSession) FindChannel(ctx context.Context, storedID string) (*entities.RemoteChannel, error) {
	cursor := dialogCursor{peer: &tg.InputPeerEmpty{}}
	userHashes := make(map[int64]int64)
	channelHashes := make(map[int64]int64)

	for {
		if err := s.wait(ctx); err != nil {
			return nil, err
		}

		resp, err := s.api.MessagesGetDialogs(ctx, &tg.MessagesGetDialogsRequest{
			OffsetDate: cursor.date,
			OffsetID:   cursor.id,
			OffsetPeer: cursor.peer,
			Limit:      s.pageSize,
		})
		if err != nil {
			return nil, fmt.Errorf("MessagesGetDialogs: %w", err)
		}

		page, last, err := normalizeDialogsResponse(resp)
		if err != nil {
			if errors.Is(err, errDialogsNotModified) {
				break
			}
			return nil, err
		}

		if ch := matchChannel(page.Chats, storedID); ch != nil {
			s.logger.Debug().Int64("channel_id", ch.ID).Msg("channel located in dialogs")
			return ch, nil
		}

		if last || len(page.Dialogs) == 0 || len(page.Dialogs) < s.pageSize {
			break
		}

		updateHashes(page, userHashes, channelHashes)
		next := nextCursor(page, cursor, userHashes, channelHashes)
		if next.date == cursor.date && next.id == cursor.id {
			break
		}
		cursor = next
	}

	return nil, telegramerrors.ErrRemoteChannelNotFound
}

// normalizeDialogsResponse flattens the dialogs variants into one page.
// last is true when Telegram returned the complete list in one response.
func normalizeDialogsResponse(resp tg.MessagesDialogsClass) (*tg.MessagesDialogs, bool, error) {
	switch data := resp.(type) {
	case *tg.MessagesDialogs:
		return data, true, nil
	case *tg.MessagesDialogsSlice:
		return &tg.MessagesDialogs{
			Dialogs:  data.Dialogs,
			Messages: data.Messages,
			Chats:    data.Chats,
			Users:    data.Users,
		}, false, nil
	case *tg.MessagesDialogsNotModified:
		return nil, true, errDialogsNotModified
	default:
		return nil, false, fmt.Errorf("%w: dialogs %T", telegramerrors.ErrUnexpectedResponse, resp)
	}
}

func matchChannel(chats []tg.ChatClass, storedID string) *entities.RemoteChannel {
	for _, chat := range chats {
		ch, ok := chat.(*tg.Channel)
		if !ok {
			continue
		}
		if channelentities.MatchesRemoteID(ch.ID, storedID) {
			return &entities.RemoteChannel{
				ID:         ch.ID,
				AccessHash: ch.AccessHash,
				Title:      ch.Title,
			}
		}
	}
	return nil
}

func updateHashes(page *tg.MessagesDialogs, userHashes, channelHashes map[int64]int64) {
	for _, entity := range page.Users {
		if user, ok := entity.(*tg.User); ok {
			userHashes[user.ID] = user.AccessHash
		}
	}
	for _, entity := range page.Chats {
		if ch, ok := entity.(*tg.Channel); ok {
			channelHashes[ch.ID] = ch.AccessHash
		}
	}
}

// nextCursor derives the offsets of the following page from the last dialog of this one.
// Zero offsets keep the previous value.
func nextCursor(page *tg.MessagesDialogs, prev dialogCursor, userHashes, channelHashes map[int64]int64) dialogCursor {
	next := dialogCursor{peer: &tg.InputPeerEmpty{}}

	switch dlg := page.Dialogs[len(page.Dialogs)-1].(type) {
	case *tg.Dialog:
		next.id = dlg.TopMessage
		next.date = messageDate(page.Messages, dlg.TopMessage)
		next.peer = peerToInput(dlg.Peer, userHashes, channelHashes)
	case *tg.DialogFolder:
		next.id = dlg.TopMessage
		next.date = messageDate(page.Messages, dlg.TopMessage)
		next.peer = peerToInput(dlg.Peer, userHashes, channelHashes)
	}

	if next.date == 0 {
		next.date = prev.date
	}
	if next.id == 0 {
		next.id = prev.id
	}
	return next
}

func messageDate(messages []tg.MessageClass, id int) int {
	for _, msg := range messages {
		switch item := msg.(type) {
		case *tg.Message:
			if item.ID == id {
				return item.Date
			}
		case *tg.MessageService:
			if item.ID == id {
				return item.Date
			}
		}
	}
	return 0
}

func peerToInput(peer tg.PeerClass, userHashes, channelHashes map[int64]int64) tg.InputPeerClass {
	switch entity := peer.(type) {
	case *tg.PeerUser:
		return &tg.InputPeerUser{UserID: entity.UserID, AccessHash: userHashes[entity.UserID]}
	case *tg.PeerChat:
		return &tg.InputPeerChat{ChatID: entity.ChatID}
	case *tg.PeerChannel:
		return &tg.InputPeerChannel{ChannelID: entity.ChannelID, AccessHash: channelHashes[entity.ChannelID]}
	default:
		return &tg.InputPeerEmpty{}
	}
}
