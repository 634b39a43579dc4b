package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrMessageEmpty = errors.New("message empty")

type MessageID string

type Message struct {
	ID        MessageID `bson:"_id" json:"id"`
	ChatID    ChatID    `bson:"chat_id" json:"chatId"`
	Sender    UserID    `bson:"sender" json:"sender"`
	Body      string    `bson:"body" json:"message"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

func NewMessage(chatID ChatID, sender UserID, body string) (*Message, error) {
	if body == "" {
		return nil, ErrMessageEmpty
	}
	return &Message{
		ID:        MessageID(uuid.NewString()),
		ChatID:    chatID,
		Sender:    sender,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}, nil
}
