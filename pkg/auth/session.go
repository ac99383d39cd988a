package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

var (
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session expired")
)

// JWTSession is a SessionSource backed by the session provider's JWT. The
// session-sync collaborator keeps it current through Update.
//
// When the claims carry an "accessToken" (or "access_token") claim, that is
// the bearer token. Otherwise the session JWT itself is.
type JWTSession struct {
	mu     sync.RWMutex
	raw    string
	secret []byte
}

// NewJWTSession creates a JWTSession. With a non-empty secret the HS256
// signature is verified; without one the claims are read unverified and only
// the expiry is checked.
func NewJWTSession(raw string, secret []byte) *JWTSession {
	return &JWTSession{raw: raw, secret: secret}
}

// Update replaces the session JWT. An empty string ends the session.
func (s *JWTSession) Update(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
}

// AccessToken implements SessionSource.
func (s *JWTSession) AccessToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	raw := s.raw
	secret := s.secret
	s.mu.RUnlock()

	if raw == "" {
		return "", ErrNoSession
	}

	claims := jwt.MapClaims{}
	if len(secret) > 0 {
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return "", ErrSessionExpired
			}
			return "", fmt.Errorf("invalid session token: %w", err)
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
			return "", fmt.Errorf("invalid session token: %w", err)
		}
		exp, err := claims.GetExpirationTime()
		if err != nil {
			return "", fmt.Errorf("invalid session token: %w", err)
		}
		if exp != nil && !exp.After(timeNow()) {
			return "", ErrSessionExpired
		}
	}

	for _, name := range []string{"accessToken", "access_token"} {
		if v, ok := claims[name].(string); ok && v != "" {
			return v, nil
		}
	}

	return raw, nil
}

// OAuth2Session is a SessionSource backed by an oauth2.TokenSource.
type OAuth2Session struct {
	src oauth2.TokenSource
}

// NewOAuth2Session creates an OAuth2Session. The source is wrapped with
// oauth2.ReuseTokenSource so valid tokens are not fetched again.
func NewOAuth2Session(src oauth2.TokenSource) *OAuth2Session {
	return &OAuth2Session{src: oauth2.ReuseTokenSource(nil, src)}
}

// AccessToken implements SessionSource.
func (s *OAuth2Session) AccessToken(ctx context.Context) (string, error) {
	tok, err := s.src.Token()
	if err != nil {
		return "", fmt.Errorf("failed to get oauth2 token: %w", err)
	}
	if !tok.Valid() {
		return "", ErrSessionExpired
	}
	return tok.AccessToken, nil
}
