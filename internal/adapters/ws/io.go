package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeWait = 5 * time.Second

func (ctl *Controller) writePump(s *session) {
	for data := range s.send {
		if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			log.Error().Err(err).Str("module", "ws").Str("conn", string(s.id)).Msg("writePump set deadline")
			return
		}
		if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Error().Err(err).Str("module", "ws").Str("conn", string(s.id)).Msg("writePump write error")
			return
		}
	}
}

func (ctl *Controller) readPump(ctx context.Context, s *session) {
	defer func() {
		log.Info().Str("module", "ws").Str("conn", string(s.id)).Msg("readPump closing")
		s.close()
		ctl.Router.Disconnect(s.id)
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "ws").Str("conn", string(s.id)).Msg("readPump ctx done")
			return
		default:
			_, data, err := s.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Error().Err(err).Str("module", "ws").Str("conn", string(s.id)).Msg("readPump read error")
				}
				return
			}
			ctl.dispatch(ctx, s, data)
		}
	}
}

func marshalFrame(v any) ([]byte, error) {
	return json.Marshal(v)
}
