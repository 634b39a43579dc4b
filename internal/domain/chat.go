package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type (
	// ChatID identifies a chat. It is used verbatim as the realtime room name.
	ChatID   string
	ChatType string
)

const (
	ChatIndividual ChatType = "IndividualChat"
	ChatGroup      ChatType = "GroupChat"
)

var (
	ErrNoMembers       = errors.New("chat needs members")
	ErrGroupNameEmpty  = errors.New("group name empty")
	ErrNotParticipants = errors.New("individual chat needs exactly two participants")
)

type Chat struct {
	ID          ChatID    `bson:"_id" json:"id"`
	Type        ChatType  `bson:"type" json:"type"`
	Name        string    `bson:"name,omitempty" json:"name,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Owner       UserID    `bson:"owner,omitempty" json:"owner,omitempty"`
	Admins      []UserID  `bson:"admins,omitempty" json:"admins,omitempty"`
	Members     []UserID  `bson:"members" json:"members"`
	LastMessage *Message  `bson:"last_message,omitempty" json:"lastMessage,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// NewIndividualChat pairs exactly two participants; Members doubles as the
// participant list for the individual type.
func NewIndividualChat(a, b UserID) (*Chat, error) {
	if a == "" || b == "" || a == b {
		return nil, ErrNotParticipants
	}
	now := time.Now().UTC()
	return &Chat{
		ID:        ChatID(uuid.NewString()),
		Type:      ChatIndividual,
		Members:   []UserID{a, b},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func NewGroupChat(name, description string, owner UserID, members []UserID) (*Chat, error) {
	if name == "" {
		return nil, ErrGroupNameEmpty
	}
	if len(members) == 0 {
		return nil, ErrNoMembers
	}
	// The creator is always a member, whether or not the client listed them.
	if !containsUser(members, owner) {
		members = append(members, owner)
	}
	now := time.Now().UTC()
	return &Chat{
		ID:          ChatID(uuid.NewString()),
		Type:        ChatGroup,
		Name:        name,
		Description: description,
		Owner:       owner,
		Admins:      []UserID{owner},
		Members:     members,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Counterpart returns the other participant of an individual chat.
func (c *Chat) Counterpart(me UserID) (UserID, bool) {
	if c.Type != ChatIndividual {
		return "", false
	}
	for _, m := range c.Members {
		if m != me {
			return m, true
		}
	}
	return "", false
}

func containsUser(ids []UserID, id UserID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
