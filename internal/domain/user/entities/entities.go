package entities

import "time"

// LinkState is the progress of linking a Telegram account to a user
type LinkState string

const (
	LinkStateUnlinked      LinkState = "unlinked"
	LinkStateOTPRequested  LinkState = "otp_requested"
	LinkStateAuthenticated LinkState = "authenticated"
)

// User is an application user and the Telegram session bound to it
type User struct {
	ID            string
	Username      string
	PasswordHash  string
	Session       []byte
	PhoneNumber   string
	PhoneCodeHash string
	Authenticated bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasPendingOTP reports whether a login code was requested and can be verified
func (u *User) HasPendingOTP() bool {
	return len(u.Session) > 0 && u.PhoneNumber != "" && u.PhoneCodeHash != ""
}

// CanOperateChannels reports whether channel operations may run on behalf of the user
func (u *User) CanOperateChannels() bool {
	return u.Authenticated && len(u.Session) > 0
}

// LinkState derives the linkage state from the stored fields
func (u *User) LinkState() LinkState {
	switch {
	case u.CanOperateChannels():
		return LinkStateAuthenticated
	case u.HasPendingOTP():
		return LinkStateOTPRequested
	default:
		return LinkStateUnlinked
	}
}
