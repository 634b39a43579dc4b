package app

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rishabh705/pixel-pals-backend/internal/domain"
)

// ErrStoreUnavailable marks a failed membership fetch. It only ever degrades
// the targeted-group delivery path; the room broadcast has already happened
// by the time the store is consulted.
var ErrStoreUnavailable = errors.New("membership store unavailable")

const defaultStoreTimeout = 3 * time.Second

// Router wires realtime events to the directory and the room table and
// performs the fan-out. Every handler is best-effort: no failure escapes to
// the transport or tears down the session.
type Router struct {
	Directory *Directory
	Rooms     *RoomTable
	Members   MembershipResolver
	History   HistoryLoader

	// StoreTimeout bounds the per-send membership query.
	StoreTimeout time.Duration
}

func NewRouter(members MembershipResolver, history HistoryLoader, storeTimeout time.Duration) *Router {
	if storeTimeout <= 0 {
		storeTimeout = defaultStoreTimeout
	}
	return &Router{
		Directory:    NewDirectory(),
		Rooms:        NewRoomTable(),
		Members:      members,
		History:      history,
		StoreTimeout: storeTimeout,
	}
}

// RegisterUser binds the claimed stable user id to the session.
func (r *Router) RegisterUser(sess Session, userID domain.UserID) {
	r.Directory.Register(userID, sess)
}

// JoinChat adds the session to the chat's room and replies with the persisted
// history. The join itself never fails; a history load failure is logged and
// the reply skipped.
func (r *Router) JoinChat(ctx context.Context, sess Session, chatID domain.ChatID) {
	r.Rooms.Join(chatID, sess)

	if r.History == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, r.StoreTimeout)
	defer cancel()
	msgs, err := r.History.ForChat(ctx, chatID)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Str("chat", string(chatID)).Msg("history load failed, skipping chat-history reply")
		return
	}
	if err := sess.Send(HistoryEvent{Type: EvChatHistory, ChatID: chatID, Messages: msgs}); err != nil {
		log.Warn().Err(err).Str("module", "app.router").Str("conn", string(sess.ID())).Msg("chat-history send dropped")
	}
}

// SendMessage attempts two independent delivery paths, neither blocking the
// other:
//
//  1. broadcast to every other session joined to the chat's room, reaching
//     anyone currently viewing the chat regardless of registration;
//  2. a targeted emit to registered-but-not-joined recipients, resolved from
//     the directory (and, for groups, from persisted membership).
//
// A recipient who is both joined and registered receives the message twice.
// That duplication is deliberate here: the client reconciles, and the server
// stays free of per-recipient delivery state.
func (r *Router) SendMessage(ctx context.Context, sess Session, p MessagePayload) {
	ev := MessageEvent{Type: EvReceiveMessage, MessagePayload: p}

	r.Rooms.Broadcast(p.ChatID, sess.ID(), ev)

	if p.Receiver == "" {
		r.emitToGroup(ctx, sess, p.ChatID, ev)
		return
	}
	r.emitToUser(sess, p.Receiver, ev)
}

// emitToGroup resolves persisted membership and emits to each member with a
// live registration. Resolution failure degrades this path only.
func (r *Router) emitToGroup(ctx context.Context, sess Session, chatID domain.ChatID, ev MessageEvent) {
	ctx, cancel := context.WithTimeout(ctx, r.StoreTimeout)
	defer cancel()
	members, err := r.Members.MemberIDs(ctx, chatID)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Str("chat", string(chatID)).
			Msgf("%v, dropping targeted group delivery", ErrStoreUnavailable)
		return
	}
	for _, userID := range members {
		if userID == ev.Sender {
			continue
		}
		r.emitToUser(sess, userID, ev)
	}
}

// emitToUser delivers directly to a registered user's session. A directory
// miss means the user is offline, which is not an error. The sender's own
// session is never targeted.
func (r *Router) emitToUser(sess Session, userID domain.UserID, ev MessageEvent) {
	target, ok := r.Directory.Lookup(userID)
	if !ok || target.ID() == sess.ID() {
		return
	}
	if err := target.Send(ev); err != nil {
		log.Warn().Err(err).Str("module", "app.router").Str("user", string(userID)).Msg("targeted send dropped")
	}
}

// Typing and StopTyping broadcast a presence indicator to the room, excluding
// the sender. Nothing is retained.
func (r *Router) Typing(sess Session, chatID domain.ChatID, user domain.UserID) {
	r.Rooms.Broadcast(chatID, sess.ID(), IndicatorEvent{Type: EvTyping, ChatID: chatID, User: user})
}

func (r *Router) StopTyping(sess Session, chatID domain.ChatID, user domain.UserID) {
	r.Rooms.Broadcast(chatID, sess.ID(), IndicatorEvent{Type: EvStopTyping, ChatID: chatID, User: user})
}

// Drawing relays a stroke to the room, excluding the sender. No persistence,
// no ordering guarantee beyond arrival order.
func (r *Router) Drawing(sess Session, chatID domain.ChatID, user domain.UserID, stroke json.RawMessage) {
	r.Rooms.Broadcast(chatID, sess.ID(), DrawingEvent{Type: EvDrawing, ChatID: chatID, User: user, Stroke: stroke})
}

// Disconnect cleans up after a closed connection: the directory entry (if
// any) and all room memberships.
func (r *Router) Disconnect(conn ConnID) {
	r.Directory.Remove(conn)
	r.Rooms.Drop(conn)
}
