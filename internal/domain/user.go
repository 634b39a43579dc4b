// Package domain contains the chat entities without behavior, just meta-data.
package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	MaxUsernameLen = 36
	MinPasswordLen = 4
)

var (
	ErrUsernameTooLong = errors.New("username too long")
	ErrUsernameEmpty   = errors.New("username empty")
	ErrPasswordTooWeak = errors.New("password too short")
)

// UserID is the stable identifier of a registered application user. It is the
// key under which a live connection is looked up for targeted delivery.
type UserID string

const DefaultAvatar = "https://github.com/shadcn.png"

type User struct {
	ID        UserID    `bson:"_id" json:"id"`
	Username  string    `bson:"username" json:"username"`
	Password  string    `bson:"password" json:"-"` // bcrypt hash, never serialized out
	Avatar    string    `bson:"avatar" json:"avatar"`
	Contacts  []UserID  `bson:"contacts" json:"-"`
	Refresh   string    `bson:"refresh_token" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// NewUser is a tiny helper to avoid ad-hoc struct literals in handlers.
// The password is expected to arrive already hashed.
func NewUser(username, hashedPwd string) (*User, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        UserID(uuid.NewString()),
		Username:  username,
		Password:  hashedPwd,
		Avatar:    DefaultAvatar,
		Contacts:  []UserID{},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func ValidateUsername(name string) error {
	if len(name) == 0 {
		return ErrUsernameEmpty
	}
	if len(name) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	return nil
}

func ValidatePassword(pwd string) error {
	if len(pwd) < MinPasswordLen {
		return ErrPasswordTooWeak
	}
	return nil
}

// Contact is the projection of a user exposed to other users.
type Contact struct {
	ID       UserID `bson:"_id" json:"id"`
	Username string `bson:"username" json:"username"`
	Avatar   string `bson:"avatar" json:"avatar"`
}

func (u *User) AsContact() Contact {
	return Contact{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}
