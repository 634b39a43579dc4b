package app

import (
	"encoding/json"

	"github.com/Rishabh705/pixel-pals-backend/internal/domain"
)

// Inbound and outbound realtime event names.
const (
	EvRegisterUser = "register-user"
	EvJoinChat     = "join-chat"
	EvSendMessage  = "send-message"
	EvTyping       = "typing"
	EvStopTyping   = "stop-typing"
	EvDrawing      = "drawing"

	EvReceiveMessage = "receive-message"
	EvChatHistory    = "chat-history"
)

// MessagePayload is the send-message payload. An empty Receiver is the group
// sentinel: recipients are resolved from persisted membership instead.
type MessagePayload struct {
	ChatID   domain.ChatID `json:"chat_id"`
	Sender   domain.UserID `json:"sender"`
	Receiver domain.UserID `json:"receiver"`
	Message  string        `json:"message"`
}

// MessageEvent is the receive-message emission; it carries the inbound
// payload through unchanged.
type MessageEvent struct {
	Type string `json:"type"`
	MessagePayload
}

// IndicatorEvent covers typing and stop-typing. Fire-and-forget, nothing is
// retained.
type IndicatorEvent struct {
	Type   string        `json:"type"`
	ChatID domain.ChatID `json:"chat_id"`
	User   domain.UserID `json:"user,omitempty"`
}

// DrawingEvent relays a live drawing stroke to the room. The stroke data is
// opaque to the server.
type DrawingEvent struct {
	Type   string          `json:"type"`
	ChatID domain.ChatID   `json:"chat_id"`
	User   domain.UserID   `json:"user,omitempty"`
	Stroke json.RawMessage `json:"stroke"`
}

// HistoryEvent answers a join with the chat's persisted messages.
type HistoryEvent struct {
	Type     string           `json:"type"`
	ChatID   domain.ChatID    `json:"chat_id"`
	Messages []domain.Message `json:"messages"`
}
