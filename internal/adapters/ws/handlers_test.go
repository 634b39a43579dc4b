package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rishabh705/pixel-pals-backend/internal/app"
	"github.com/Rishabh705/pixel-pals-backend/internal/auth"
	"github.com/Rishabh705/pixel-pals-backend/internal/config"
	"github.com/Rishabh705/pixel-pals-backend/internal/domain"
)

type nopResolver struct{}

func (nopResolver) MemberIDs(context.Context, domain.ChatID) ([]domain.UserID, error) {
	return nil, nil
}

func newTestController(t *testing.T) (*Controller, *auth.Tokens) {
	t.Helper()
	tokens, err := auth.New(auth.Options{Secret: []byte("test-secret")})
	if err != nil {
		t.Fatalf("token setup: %v", err)
	}
	router := app.NewRouter(nopResolver{}, nil, time.Second)
	return NewController(router, tokens, &config.Config{}), tokens
}

func newTestSession(id string) *session {
	return &session{id: app.ConnID(id), send: make(chan []byte, sendQueueSize)}
}

// drain reads every queued frame of a session as decoded JSON.
func drain(t *testing.T, s *session) []map[string]any {
	t.Helper()
	var out []map[string]any
	for {
		select {
		case b := <-s.send:
			var m map[string]any
			if err := json.Unmarshal(b, &m); err != nil {
				t.Fatalf("bad frame %q: %v", b, err)
			}
			out = append(out, m)
		default:
			return out
		}
	}
}

func TestDispatchRegisterWithoutToken(t *testing.T) {
	ctl, _ := newTestController(t)
	s := newTestSession("conn-1")

	ctl.dispatch(context.Background(), s, []byte(`{"type":"register-user","user_id":"u-1"}`))

	if _, ok := ctl.Router.Directory.Lookup("u-1"); !ok {
		t.Fatal("expected bare claimed id to register")
	}
}

func TestDispatchRegisterWithValidToken(t *testing.T) {
	ctl, tokens := newTestController(t)
	s := newTestSession("conn-1")
	signed, err := tokens.IssueAccess("u-1", "alice")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}

	payload, _ := json.Marshal(map[string]string{
		"type": "register-user", "user_id": "u-1", "token": signed,
	})
	ctl.dispatch(context.Background(), s, payload)

	if _, ok := ctl.Router.Directory.Lookup("u-1"); !ok {
		t.Fatal("expected token-backed registration to succeed")
	}
}

func TestDispatchRegisterTokenClaimMismatch(t *testing.T) {
	ctl, tokens := newTestController(t)
	s := newTestSession("conn-1")
	signed, err := tokens.IssueAccess("u-other", "bob")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}

	payload, _ := json.Marshal(map[string]string{
		"type": "register-user", "user_id": "u-1", "token": signed,
	})
	ctl.dispatch(context.Background(), s, payload)

	if _, ok := ctl.Router.Directory.Lookup("u-1"); ok {
		t.Fatal("expected mismatched claim to be refused")
	}
	frames := drain(t, s)
	if len(frames) != 1 || frames[0]["error"] != "invalid_token" {
		t.Fatalf("expected invalid_token error frame, got %v", frames)
	}
}

func TestDispatchJoinAndMessageFlow(t *testing.T) {
	ctl, _ := newTestController(t)
	a := newTestSession("conn-a")
	b := newTestSession("conn-b")

	ctl.dispatch(context.Background(), a, []byte(`{"type":"join-chat","chat_id":"chat-1"}`))
	ctl.dispatch(context.Background(), b, []byte(`{"type":"join-chat","chat_id":"chat-1"}`))
	ctl.dispatch(context.Background(), a, []byte(
		`{"type":"send-message","chat_id":"chat-1","sender":"u-a","receiver":"u-b","message":"hi"}`))

	frames := drain(t, b)
	if len(frames) != 1 {
		t.Fatalf("expected one frame at B, got %d", len(frames))
	}
	if frames[0]["type"] != "receive-message" || frames[0]["message"] != "hi" {
		t.Fatalf("unexpected frame: %v", frames[0])
	}
	if got := drain(t, a); len(got) != 0 {
		t.Fatalf("sender must not receive its own message, got %v", got)
	}
}

func TestDispatchMalformedFramesAreDropped(t *testing.T) {
	ctl, _ := newTestController(t)
	s := newTestSession("conn-1")

	ctl.dispatch(context.Background(), s, []byte(`not json`))
	ctl.dispatch(context.Background(), s, []byte(`{"type":"no-such-event"}`))
	ctl.dispatch(context.Background(), s, []byte(`{"type":"typing"}`)) // missing chat_id

	if ctl.Router.Directory.Len() != 0 {
		t.Fatal("malformed frames must not mutate state")
	}
}

func TestUpgraderEnforcesOriginWhitelist(t *testing.T) {
	tokens, err := auth.New(auth.Options{Secret: []byte("test-secret")})
	if err != nil {
		t.Fatalf("token setup: %v", err)
	}
	cfg := &config.Config{Whitelist: []string{"http://localhost:5173"}}
	ctl := NewController(app.NewRouter(nopResolver{}, nil, time.Second), tokens, cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/ws", nil)
	req.Header.Set("Origin", "http://evil.example")
	if ctl.upgrader.CheckOrigin(req) {
		t.Fatal("expected unknown origin to be refused")
	}
	req.Header.Set("Origin", "http://localhost:5173")
	if !ctl.upgrader.CheckOrigin(req) {
		t.Fatal("expected whitelisted origin to be accepted")
	}
}

func TestSessionSendBackpressure(t *testing.T) {
	s := &session{id: "conn-1", send: make(chan []byte, 1)}

	if err := s.Send(map[string]string{"type": "x"}); err != nil {
		t.Fatalf("first send: %v", err)
	}
	if err := s.Send(map[string]string{"type": "y"}); err != ErrBackpressure {
		t.Fatalf("expected backpressure, got %v", err)
	}
}

func TestSessionSendAfterClose(t *testing.T) {
	s := &session{id: "conn-1", send: make(chan []byte, 1)}
	s.close()

	if err := s.Send(map[string]string{"type": "x"}); err != ErrConnClosed {
		t.Fatalf("expected closed error, got %v", err)
	}
}
