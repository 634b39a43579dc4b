package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Rishabh705/pixel-pals-backend/internal/domain"
)

// RoomTable is the transport grouping primitive: chat id -> joined sessions.
// A session may belong to any number of rooms. Rooms are created on first
// join and vanish with their last member.
type RoomTable struct {
	mu    sync.RWMutex
	rooms map[domain.ChatID]map[ConnID]Session
}

func NewRoomTable() *RoomTable {
	return &RoomTable{rooms: make(map[domain.ChatID]map[ConnID]Session)}
}

// Join adds the session to the room named after the chat id. No existence or
// authorization check is performed on the chat id.
func (rt *RoomTable) Join(chatID domain.ChatID, sess Session) {
	rt.mu.Lock()
	room, ok := rt.rooms[chatID]
	if !ok {
		room = make(map[ConnID]Session)
		rt.rooms[chatID] = room
	}
	room[sess.ID()] = sess
	rt.mu.Unlock()
	log.Info().Str("module", "app.rooms").Str("chat", string(chatID)).Str("conn", string(sess.ID())).Msg("joined room")
}

// Drop releases every room membership of a connection; called on disconnect.
func (rt *RoomTable) Drop(conn ConnID) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	for chatID, room := range rt.rooms {
		if _, ok := room[conn]; !ok {
			continue
		}
		delete(room, conn)
		if len(room) == 0 {
			delete(rt.rooms, chatID)
		}
	}
}

// Broadcast sends v to every session joined to the room except the one
// identified by sender. Best-effort; send failures are the transport's to
// report.
func (rt *RoomTable) Broadcast(chatID domain.ChatID, sender ConnID, v any) {
	rt.mu.RLock()
	targets := make([]Session, 0, len(rt.rooms[chatID]))
	for id, sess := range rt.rooms[chatID] {
		if id == sender {
			continue
		}
		targets = append(targets, sess)
	}
	rt.mu.RUnlock()

	for _, sess := range targets {
		if err := sess.Send(v); err != nil {
			log.Warn().Err(err).Str("module", "app.rooms").Str("chat", string(chatID)).Str("conn", string(sess.ID())).Msg("broadcast send dropped")
		}
	}
}

// Joined reports whether the connection is currently in the room.
func (rt *RoomTable) Joined(chatID domain.ChatID, conn ConnID) bool {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	_, ok := rt.rooms[chatID][conn]
	return ok
}

// MemberCount reports how many sessions are joined to a room.
func (rt *RoomTable) MemberCount(chatID domain.ChatID) int {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return len(rt.rooms[chatID])
}
