package entities

import "strings"

// RemoteUser is a Telegram user or bot resolved by username
type RemoteUser struct {
	ID         int64
	AccessHash int64
	Username   string
	Bot        bool
}

// RemoteChannel is a channel handle found in the caller's dialogs
type RemoteChannel struct {
	ID         int64
	AccessHash int64
	Title      string
}

// CreatedChannel is the broadcast channel returned by channel creation
type CreatedChannel struct {
	ID         int64
	AccessHash int64
	Title      string
}

// TrimUsername strips surrounding spaces and the leading @ of a Telegram username
func TrimUsername(username string) string {
	return strings.TrimPrefix(strings.TrimSpace(username), "@")
}
