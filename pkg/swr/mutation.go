package swr

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/doctorq/doctorq-sdk/pkg/apiclient"
)

// Doer performs arbitrary requests.
type Doer interface {
	Request(ctx context.Context, method, endpoint string, data any, opts ...apiclient.RequestOption) (*apiclient.Result, error)
}

// Path resolves the endpoint of a mutation, either fixed or derived from
// the payload.
type Path[P any] interface {
	resolve(payload P) string
}

type staticPath[P any] string

func (p staticPath[P]) resolve(P) string { return string(p) }

// StaticPath returns a Path that is always endpoint.
func StaticPath[P any](endpoint string) Path[P] {
	return staticPath[P](endpoint)
}

type pathFunc[P any] func(P) string

func (f pathFunc[P]) resolve(payload P) string { return f(payload) }

// PathFunc returns a Path computed from the payload at trigger time.
func PathFunc[P any](fn func(P) string) Path[P] {
	return pathFunc[P](fn)
}

// MutationState is the state of a Mutation.
type MutationState[R any] struct {
	Data      *R
	Error     error
	IsLoading bool
}

// IsPending reports whether a trigger is in flight.
func (s MutationState[R]) IsPending() bool {
	return s.IsLoading
}

// IsError reports whether the last trigger failed.
func (s MutationState[R]) IsError() bool {
	return s.Error != nil
}

// MutationOption configures a Mutation.
type MutationOption[P, R any] func(*Mutation[P, R])

// OnSuccess registers a callback run after a successful trigger.
func OnSuccess[P, R any](fn func(data *R, payload P)) MutationOption[P, R] {
	return func(m *Mutation[P, R]) {
		m.onSuccess = fn
	}
}

// OnError registers a callback run after a failed trigger.
func OnError[P, R any](fn func(err error, payload P)) MutationOption[P, R] {
	return func(m *Mutation[P, R]) {
		m.onError = fn
	}
}

// Mutation sends a write request on demand. Results are not cached.
type Mutation[P, R any] struct {
	doer   Doer
	method string
	path   Path[P]

	onSuccess func(*R, P)
	onError   func(error, P)

	mu    sync.Mutex
	state MutationState[R]
	seq   uint64
}

// NewMutation creates a mutation sending method requests to path.
func NewMutation[P, R any](doer Doer, method string, path Path[P], opts ...MutationOption[P, R]) *Mutation[P, R] {
	m := &Mutation[P, R]{
		doer:   doer,
		method: method,
		path:   path,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Trigger sends payload and returns the decoded response. A response with
// no content succeeds with nil data. The payload is not sent for DELETE.
func (m *Mutation[P, R]) Trigger(ctx context.Context, payload P) (*R, error) {
	m.mu.Lock()
	m.seq++
	seq := m.seq
	m.state = MutationState[R]{IsLoading: true}
	m.mu.Unlock()

	data, err := m.send(ctx, payload)

	m.mu.Lock()
	// A later trigger or a Reset owns the state now.
	if seq == m.seq {
		m.state = MutationState[R]{Data: data, Error: err}
	}
	m.mu.Unlock()

	if err != nil {
		if m.onError != nil {
			m.onError(err, payload)
		}
		return nil, err
	}

	if m.onSuccess != nil {
		m.onSuccess(data, payload)
	}
	return data, nil
}

func (m *Mutation[P, R]) send(ctx context.Context, payload P) (*R, error) {
	endpoint := m.path.resolve(payload)
	if endpoint == "" {
		return nil, errors.New("mutation path resolved to an empty endpoint")
	}

	var body any = payload
	if m.method == http.MethodDelete {
		body = nil
	}

	result, err := m.doer.Request(ctx, m.method, endpoint, body)
	if err != nil {
		return nil, err
	}
	if result.NoContent() {
		return nil, nil
	}

	out := new(R)
	if err := result.Decode(out); err != nil {
		return nil, err
	}
	return out, nil
}

// State returns the current state.
func (m *Mutation[P, R]) State() MutationState[R] {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Reset returns the mutation to idle.
func (m *Mutation[P, R]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	m.state = MutationState[R]{}
}
