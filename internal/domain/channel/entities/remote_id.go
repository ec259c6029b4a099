package entities

import (
	"strconv"
	"strings"
)

// botAPIChannelPrefix marks channel ids in the Bot API and in client-side peer ids.
const botAPIChannelPrefix = "-100"

// NormalizeRemoteID returns the raw MTProto channel id for a stored id
// that may carry the Bot API prefix.
func NormalizeRemoteID(id string) string {
	return strings.TrimPrefix(id, botAPIChannelPrefix)
}

// MatchesRemoteID reports whether an MTProto channel id refers to the stored id.
// Both the raw and the prefixed form of the stored id are accepted.
func MatchesRemoteID(channelID int64, stored string) bool {
	if stored == "" {
		return false
	}
	return strconv.FormatInt(channelID, 10) == NormalizeRemoteID(stored)
}

// BotAPIChatID converts a stored channel id into the chat id the Bot API expects.
// Ids that are already negative are returned unchanged.
func BotAPIChatID(stored string) string {
	if strings.HasPrefix(stored, "-") {
		return stored
	}
	return botAPIChannelPrefix + stored
}
