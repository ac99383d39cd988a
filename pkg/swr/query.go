package swr

import (
	"context"

	"github.com/doctorq/doctorq-sdk/pkg/apiclient"
	"github.com/doctorq/doctorq-sdk/pkg/models"
)

// Fetcher performs GET requests.
type Fetcher interface {
	Get(ctx context.Context, endpoint string, out any, opts ...apiclient.RequestOption) error
}

// ListResult is the state of a list query.
type ListResult[T any] struct {
	Data         []T // never nil
	Meta         models.Meta
	IsLoading    bool
	IsValidating bool
	Error        error
}

// IsError reports whether the last fetch failed.
func (r ListResult[T]) IsError() bool {
	return r.Error != nil
}

// Query reads a paginated list endpoint through the cache.
type Query[T any] struct {
	loader
}

// NewQuery creates a list query for endpoint with params.
func NewQuery[T any](cache *Cache, fetcher Fetcher, endpoint string, params apiclient.Params, opts ...Option) *Query[T] {
	params = params.Clone()
	fetch := func(ctx context.Context) (any, error) {
		var page models.Page[T]
		if err := fetcher.Get(ctx, endpoint, &page, apiclient.WithParams(params)); err != nil {
			return nil, err
		}
		if page.Items == nil {
			page.Items = []T{}
		}
		return &page, nil
	}
	return &Query[T]{loader: newLoader(cache, NewKey(endpoint, params), fetch, opts)}
}

// Key returns the cache key, or nil when the query is disabled.
func (q *Query[T]) Key() *Key {
	return q.key
}

// Load returns the current result, fetching when needed.
func (q *Query[T]) Load(ctx context.Context) ListResult[T] {
	return listResult[T](q.load(ctx))
}

// Result returns the current result without fetching.
func (q *Query[T]) Result() ListResult[T] {
	return listResult[T](q.snapshot())
}

// Mutate forces a revalidation and returns the fresh page.
func (q *Query[T]) Mutate(ctx context.Context) (*models.Page[T], error) {
	v, err := q.mutate(ctx)
	if err != nil {
		return nil, err
	}
	page, _ := v.(*models.Page[T])
	return page, nil
}

// Subscribe calls fn with the new result after every state change.
func (q *Query[T]) Subscribe(fn func(ListResult[T])) func() {
	return q.subscribe(func() {
		fn(q.Result())
	})
}

func listResult[T any](snap Snapshot) ListResult[T] {
	res := ListResult[T]{
		Data:         []T{},
		IsLoading:    isLoading(snap),
		IsValidating: snap.Validating,
		Error:        snap.Err,
	}
	if page, ok := snap.Value.(*models.Page[T]); ok && page != nil {
		res.Data = append(res.Data, page.Items...)
		res.Meta = page.Meta
	}
	return res
}
