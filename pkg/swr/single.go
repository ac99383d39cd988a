package swr

import (
	"context"

	"github.com/doctorq/doctorq-sdk/pkg/apiclient"
)

// SingleResult is the state of a single-item query.
type SingleResult[T any] struct {
	Data         *T // nil until loaded
	IsLoading    bool
	IsValidating bool
	Error        error
}

// IsError reports whether the last fetch failed.
func (r SingleResult[T]) IsError() bool {
	return r.Error != nil
}

// Single reads one entity through the cache.
type Single[T any] struct {
	loader
}

// NewSingle creates a single-item query for endpoint with params.
func NewSingle[T any](cache *Cache, fetcher Fetcher, endpoint string, params apiclient.Params, opts ...Option) *Single[T] {
	params = params.Clone()
	fetch := func(ctx context.Context) (any, error) {
		// out stays nil for a response with no content.
		var out *T
		if err := fetcher.Get(ctx, endpoint, &out, apiclient.WithParams(params)); err != nil {
			return nil, err
		}
		return out, nil
	}
	return &Single[T]{loader: newLoader(cache, NewKey(endpoint, params), fetch, opts)}
}

// Key returns the cache key, or nil when the query is disabled.
func (s *Single[T]) Key() *Key {
	return s.key
}

// Load returns the current result, fetching when needed.
func (s *Single[T]) Load(ctx context.Context) SingleResult[T] {
	return singleResult[T](s.load(ctx))
}

// Result returns the current result without fetching.
func (s *Single[T]) Result() SingleResult[T] {
	return singleResult[T](s.snapshot())
}

// Mutate forces a revalidation and returns the fresh value. A response with
// no content yields nil.
func (s *Single[T]) Mutate(ctx context.Context) (*T, error) {
	v, err := s.mutate(ctx)
	if err != nil {
		return nil, err
	}
	out, _ := v.(*T)
	return out, nil
}

// Subscribe calls fn with the new result after every state change.
func (s *Single[T]) Subscribe(fn func(SingleResult[T])) func() {
	return s.subscribe(func() {
		fn(s.Result())
	})
}

func singleResult[T any](snap Snapshot) SingleResult[T] {
	res := SingleResult[T]{
		IsLoading:    isLoading(snap),
		IsValidating: snap.Validating,
		Error:        snap.Err,
	}
	if v, ok := snap.Value.(*T); ok {
		res.Data = v
	}
	return res
}
