package entities

import "time"

// UserModel is a GORM model for users table
type UserModel struct {
	ID            string  `gorm:"primaryKey;type:uuid"`
	Username      string  `gorm:"not null;uniqueIndex;size:255"`
	Password      string  `gorm:"not null;size:255"`
	Session       []byte  `gorm:"type:bytea"`
	PhoneNumber   *string `gorm:"size:32"`
	PhoneCodeHash *string `gorm:"size:255"`
	Authenticated bool    `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts DB model to domain entity
func (m *UserModel) ToEntity() *User {
	u := &User{
		ID:            m.ID,
		Username:      m.Username,
		PasswordHash:  m.Password,
		Session:       m.Session,
		Authenticated: m.Authenticated,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.PhoneNumber != nil {
		u.PhoneNumber = *m.PhoneNumber
	}
	if m.PhoneCodeHash != nil {
		u.PhoneCodeHash = *m.PhoneCodeHash
	}
	return u
}

// NewUserModel converts a domain entity to DB model
func NewUserModel(u *User) *UserModel {
	m := &UserModel{
		ID:            u.ID,
		Username:      u.Username,
		Password:      u.PasswordHash,
		Session:       u.Session,
		Authenticated: u.Authenticated,
	}
	if u.PhoneNumber != "" {
		m.PhoneNumber = &u.PhoneNumber
	}
	if u.PhoneCodeHash != "" {
		m.PhoneCodeHash = &u.PhoneCodeHash
	}
	return m
}
