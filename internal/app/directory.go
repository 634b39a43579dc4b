package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Rishabh705/pixel-pals-backend/internal/domain"
)

// Directory maps a stable user id to its currently-active session. At most
// one session per user: a new registration silently overwrites the previous
// one, so a user connected twice only receives targeted emits on the most
// recent connection. State is in-memory only; clients re-register after
// reconnect.
type Directory struct {
	mu       sync.RWMutex
	sessions map[domain.UserID]Session
}

func NewDirectory() *Directory {
	return &Directory{sessions: make(map[domain.UserID]Session)}
}

// Register upserts the mapping. Idempotent, last registration wins.
func (d *Directory) Register(userID domain.UserID, sess Session) {
	d.mu.Lock()
	d.sessions[userID] = sess
	d.mu.Unlock()
	log.Info().Str("module", "app.directory").Str("user", string(userID)).Str("conn", string(sess.ID())).Msg("registered")
}

// Lookup returns the live session of a user, if any.
func (d *Directory) Lookup(userID domain.UserID) (Session, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	sess, ok := d.sessions[userID]
	return sess, ok
}

// Remove drops any mapping held by the given connection. Disconnect only
// knows the connection handle, so this scans by value, not by key. No-op for
// unregistered connections.
func (d *Directory) Remove(conn ConnID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for userID, sess := range d.sessions {
		if sess.ID() == conn {
			delete(d.sessions, userID)
			log.Info().Str("module", "app.directory").Str("user", string(userID)).Str("conn", string(conn)).Msg("removed")
		}
	}
}

// Len reports how many users are currently registered.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sessions)
}
