// Package auth resolves the bearer token attached to outgoing API requests.
//
// Resolution happens per request, in order:
//
//  1. a dynamic token set explicitly by the session-sync collaborator
//  2. the access token of the active session, if a SessionSource is configured
//  3. the static API key from configuration (empty means no Authorization header)
package auth

import (
	"context"
	"sync"

	"github.com/hashicorp/go-hclog"
)

// Provider returns the bearer token for the next request. An empty string
// means the request is sent without an Authorization header.
type Provider interface {
	Current(ctx context.Context) string
}

// SessionSource looks up the access token of the currently active session.
// Implementations are expected to memoize if the lookup is expensive.
type SessionSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// SessionFunc adapts a plain function to SessionSource.
type SessionFunc func(ctx context.Context) (string, error)

// AccessToken calls f.
func (f SessionFunc) AccessToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// Static is a Provider that always returns the same token.
type Static string

// Current returns the static token.
func (s Static) Current(context.Context) string {
	return string(s)
}

// Resolver implements the three-tier resolution order. The zero value is
// usable and resolves to no token.
type Resolver struct {
	mu      sync.RWMutex
	dynamic *string

	session   SessionSource
	staticKey string
	logger    hclog.Logger
}

// ResolverConfig holds configuration for a Resolver.
type ResolverConfig struct {
	Session   SessionSource // Active session lookup (optional)
	StaticKey string        // Fallback API key (optional)
	Logger    hclog.Logger  // Logger (optional)
}

var _ Provider = (*Resolver)(nil)

// NewResolver creates a new Resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	return &Resolver{
		session:   cfg.Session,
		staticKey: cfg.StaticKey,
		logger:    cfg.Logger.Named("auth"),
	}
}

// Set installs a dynamic token that overrides every other source until
// cleared. Setting an empty token clears the override.
func (r *Resolver) Set(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token == "" {
		r.dynamic = nil
		return
	}
	r.dynamic = &token
}

// Clear removes the dynamic token.
func (r *Resolver) Clear() {
	r.Set("")
}

// Dynamic returns the dynamic token and whether one is set.
func (r *Resolver) Dynamic() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.dynamic == nil {
		return "", false
	}
	return *r.dynamic, true
}

// Current resolves the token for a single request.
func (r *Resolver) Current(ctx context.Context) string {
	if token, ok := r.Dynamic(); ok {
		return token
	}

	if r.session != nil {
		token, err := r.session.AccessToken(ctx)
		if err != nil {
			if r.logger != nil {
				r.logger.Debug("session token lookup failed, falling back to static key",
					"error", err,
				)
			}
		} else if token != "" {
			return token
		}
	}

	return r.staticKey
}
