// Package app holds the realtime core: the identity directory, the room
// table and the event router that fans chat events out to the right
// connections. It is transport-agnostic; the websocket adapter plugs in
// through the Session interface.
package app

import (
	"context"

	"github.com/Rishabh705/pixel-pals-backend/internal/domain"
)

// ConnID is the handle of one live connection. Handles are minted once per
// connection and never reused.
type ConnID string

// Session is one live bidirectional channel as the router sees it. Send is
// best-effort and must never block the caller; delivery to a slow client is
// the transport's problem.
type Session interface {
	ID() ConnID
	Send(v any) error
}

// MembershipResolver is the external membership query the group fan-out
// depends on (backed by the chat store in production, faked in tests).
type MembershipResolver interface {
	MemberIDs(ctx context.Context, id domain.ChatID) ([]domain.UserID, error)
}

// HistoryLoader supplies the persisted messages sent back on join.
type HistoryLoader interface {
	ForChat(ctx context.Context, id domain.ChatID) ([]domain.Message, error)
}
