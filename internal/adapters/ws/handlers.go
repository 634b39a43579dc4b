package ws

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/Rishabh705/pixel-pals-backend/internal/app"
	"github.com/Rishabh705/pixel-pals-backend/internal/domain"
)

// dispatch routes one inbound frame by its type tag. Unknown and malformed
// frames are logged and dropped; nothing thrown here may take the session
// down.
func (ctl *Controller) dispatch(ctx context.Context, s *session, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "ws").Str("conn", string(s.id)).Msg("bad json")
		return
	}

	switch env.Type {
	case app.EvRegisterUser:
		ctl.handleRegister(s, data)
	case app.EvJoinChat:
		ctl.handleJoin(ctx, s, data)
	case app.EvSendMessage:
		ctl.handleMessage(ctx, s, data)
	case app.EvTyping, app.EvStopTyping:
		ctl.handleTyping(s, env.Type, data)
	case app.EvDrawing:
		ctl.handleDrawing(s, data)
	default:
		log.Warn().Str("module", "ws").Str("type", env.Type).Msg("unknown event")
	}
}

// handleRegister binds the claimed user id to this connection. When the
// client supplies an access token the claim is checked against it; the bare
// claim is still accepted for compatibility with clients that never
// authenticate the socket, but logged as unverified.
func (ctl *Controller) handleRegister(s *session, data []byte) {
	var p struct {
		Type   string `json:"type"`
		UserID string `json:"user_id"`
		Token  string `json:"token,omitempty"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.UserID == "" {
		log.Error().Err(err).Str("module", "ws").Msg("bad register-user payload")
		ctl.sendError(s, "bad_payload")
		return
	}

	if p.Token != "" && ctl.Tokens != nil {
		claims, err := ctl.Tokens.VerifyAccess(p.Token)
		if err != nil || string(claims.UserID) != p.UserID {
			log.Warn().Err(err).Str("module", "ws").Str("user", p.UserID).Msg("register token rejected")
			ctl.sendError(s, "invalid_token")
			return
		}
	} else {
		log.Warn().Str("module", "ws").Str("user", p.UserID).Msg("unverified registration")
	}

	ctl.Router.RegisterUser(s, domain.UserID(p.UserID))
}

func (ctl *Controller) handleJoin(ctx context.Context, s *session, data []byte) {
	var p struct {
		Type   string `json:"type"`
		ChatID string `json:"chat_id"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.ChatID == "" {
		log.Error().Err(err).Str("module", "ws").Msg("bad join-chat payload")
		ctl.sendError(s, "bad_payload")
		return
	}
	ctl.Router.JoinChat(ctx, s, domain.ChatID(p.ChatID))
}

func (ctl *Controller) handleMessage(ctx context.Context, s *session, data []byte) {
	var p app.MessagePayload
	if err := json.Unmarshal(data, &p); err != nil || p.ChatID == "" {
		log.Error().Err(err).Str("module", "ws").Msg("bad send-message payload")
		ctl.sendError(s, "bad_payload")
		return
	}
	ctl.Router.SendMessage(ctx, s, p)
}

func (ctl *Controller) handleTyping(s *session, event string, data []byte) {
	var p struct {
		Type   string `json:"type"`
		ChatID string `json:"chat_id"`
		User   string `json:"user"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.ChatID == "" {
		log.Error().Err(err).Str("module", "ws").Msg("bad typing payload")
		return
	}
	if event == app.EvTyping {
		ctl.Router.Typing(s, domain.ChatID(p.ChatID), domain.UserID(p.User))
		return
	}
	ctl.Router.StopTyping(s, domain.ChatID(p.ChatID), domain.UserID(p.User))
}

func (ctl *Controller) handleDrawing(s *session, data []byte) {
	var p struct {
		Type   string          `json:"type"`
		ChatID string          `json:"chat_id"`
		User   string          `json:"user"`
		Stroke json.RawMessage `json:"stroke"`
	}
	if err := json.Unmarshal(data, &p); err != nil || p.ChatID == "" {
		log.Error().Err(err).Str("module", "ws").Msg("bad drawing payload")
		return
	}
	ctl.Router.Drawing(s, domain.ChatID(p.ChatID), domain.UserID(p.User), p.Stroke)
}

func (ctl *Controller) sendError(s *session, reason string) {
	_ = s.Send(map[string]any{"type": "error", "error": reason})
}
