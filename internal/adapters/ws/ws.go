// Package ws adapts the realtime router to gorilla/websocket: one session per
// connection, a read pump dispatching inbound events and a write pump
// draining a bounded send queue.
package ws

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Rishabh705/pixel-pals-backend/internal/app"
	"github.com/Rishabh705/pixel-pals-backend/internal/auth"
	"github.com/Rishabh705/pixel-pals-backend/internal/config"
)

var (
	ErrBackpressure = errors.New("backpressure")
	ErrConnClosed   = errors.New("connection closed")
)

const sendQueueSize = 32

type Controller struct {
	Router *app.Router
	Tokens *auth.Tokens
	Cfg    *config.Config

	upgrader websocket.Upgrader
}

func NewController(router *app.Router, tokens *auth.Tokens, cfg *config.Config) *Controller {
	return &Controller{
		Router: router,
		Tokens: tokens,
		Cfg:    cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return cfg.AllowedOrigin(r.Header.Get("Origin"))
			},
		},
	}
}

// session implements app.Session over one websocket connection.
type session struct {
	id   app.ConnID
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func (s *session) ID() app.ConnID { return s.id }

// Send marshals v and queues it without blocking; a full queue drops the
// frame and reports backpressure.
func (s *session) Send(v any) error {
	b, err := marshalFrame(v)
	if err != nil {
		return err
	}
	return s.trySend(b)
}

func (s *session) trySend(b []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrConnClosed
	}
	select {
	case s.send <- b:
	default:
		return ErrBackpressure
	}
	return nil
}

func (s *session) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.send)
	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.mu.Unlock()
}

// HandleWS upgrades the request and starts the session pumps. ctx is the
// server lifetime context, not the request context: the connection outlives
// the handler.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	conn, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("ws upgrade")
		return
	}

	sess := &session{
		id:   app.ConnID(uuid.NewString()),
		conn: conn,
		send: make(chan []byte, sendQueueSize),
	}
	log.Info().Str("module", "ws").Str("conn", string(sess.id)).Msg("new WS connection")

	if ctl.Cfg.ReadLimit > 0 {
		conn.SetReadLimit(ctl.Cfg.ReadLimit)
	}

	go ctl.writePump(sess)
	go ctl.readPump(ctx, sess)
}
