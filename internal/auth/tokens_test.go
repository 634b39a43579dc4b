package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestTokens(t *testing.T, opts Options) *Tokens {
	t.Helper()
	if opts.Secret == nil {
		opts.Secret = []byte("test-secret")
	}
	tokens, err := New(opts)
	if err != nil {
		t.Fatalf("new tokens: %v", err)
	}
	return tokens
}

func TestNewRequiresSecret(t *testing.T) {
	if _, err := New(Options{}); !errors.Is(err, ErrNoSecret) {
		t.Fatalf("expected ErrNoSecret, got %v", err)
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tokens := newTestTokens(t, Options{})

	signed, err := tokens.IssueAccess("user-1", "alice")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	claims, err := tokens.VerifyAccess(signed)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	if claims.UserID != "user-1" || claims.Username != "alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAccessTokenWrongSecretRejected(t *testing.T) {
	issuer := newTestTokens(t, Options{Secret: []byte("secret-a")})
	verifier := newTestTokens(t, Options{Secret: []byte("secret-b")})

	signed, err := issuer.IssueAccess("user-1", "alice")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	if _, err := verifier.VerifyAccess(signed); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	tokens := newTestTokens(t, Options{AccessTTL: time.Nanosecond})

	signed, err := tokens.IssueAccess("user-1", "alice")
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := tokens.VerifyAccess(signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestRefreshTokenCarriesUsername(t *testing.T) {
	tokens := newTestTokens(t, Options{})

	signed, err := tokens.IssueRefresh("alice")
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}
	username, err := tokens.VerifyRefresh(signed)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	if username != "alice" {
		t.Fatalf("expected alice, got %q", username)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	tokens := newTestTokens(t, Options{})
	if _, err := tokens.VerifyAccess("not-a-token"); err == nil {
		t.Fatal("expected parse failure")
	}
}
