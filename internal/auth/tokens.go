// Package auth issues and verifies the access/refresh token pair used by the
// HTTP layer and the optional realtime registration handshake.
package auth

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/Rishabh705/pixel-pals-backend/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoSecret     = errors.New("token secret not configured")
)

// Options controls signing and TTLs.
type Options struct {
	Secret     []byte
	AccessTTL  time.Duration // default 24h
	RefreshTTL time.Duration // default 24h
}

func (o *Options) norm() {
	if o.AccessTTL <= 0 {
		o.AccessTTL = 24 * time.Hour
	}
	if o.RefreshTTL <= 0 {
		o.RefreshTTL = 24 * time.Hour
	}
}

// Claims carried by an access token. The refresh token only carries the
// username in its subject line.
type Claims struct {
	Username string        `json:"username"`
	UserID   domain.UserID `json:"user_id"`
	jwtlib.RegisteredClaims
}

type Tokens struct {
	opts Options
}

func New(opts Options) (*Tokens, error) {
	if len(opts.Secret) == 0 {
		return nil, ErrNoSecret
	}
	opts.norm()
	return &Tokens{opts: opts}, nil
}

func (t *Tokens) IssueAccess(userID domain.UserID, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		UserID:   userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   string(userID),
			IssuedAt:  jwtlib.NewNumericDate(now),
			NotBefore: jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(t.opts.AccessTTL)),
		},
	}
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return tok.SignedString(t.opts.Secret)
}

func (t *Tokens) IssueRefresh(username string) (string, error) {
	now := time.Now()
	claims := jwtlib.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(t.opts.RefreshTTL)),
	}
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return tok.SignedString(t.opts.Secret)
}

// VerifyAccess parses and validates an access token. Only the HMAC family is
// accepted.
func (t *Tokens) VerifyAccess(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwtlib.ParseWithClaims(token, claims, t.keyFunc)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyRefresh returns the username a refresh token was issued for.
func (t *Tokens) VerifyRefresh(token string) (string, error) {
	claims := &jwtlib.RegisteredClaims{}
	parsed, err := jwtlib.ParseWithClaims(token, claims, t.keyFunc)
	if err != nil {
		return "", err
	}
	if !parsed.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (t *Tokens) keyFunc(tok *jwtlib.Token) (interface{}, error) {
	if _, ok := tok.Method.(*jwtlib.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected alg: %v", tok.Header["alg"])
	}
	return t.opts.Secret, nil
}
