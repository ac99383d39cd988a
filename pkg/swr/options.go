package swr

import "time"

// Option configures a Query or Single.
type Option func(*options)

type options struct {
	enabled           bool
	dedupingInterval  time.Duration
	revalidateIfStale bool
}

func newOptions(cache *Cache, opts []Option) options {
	o := options{
		enabled:           true,
		dedupingInterval:  cache.DedupingInterval(),
		revalidateIfStale: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithEnabled controls whether the query fetches at all. A disabled query
// has no key, never touches the network and reports no loading state.
func WithEnabled(enabled bool) Option {
	return func(o *options) {
		o.enabled = enabled
	}
}

// WithDedupingInterval sets how long fetched data counts as fresh.
func WithDedupingInterval(d time.Duration) Option {
	return func(o *options) {
		o.dedupingInterval = d
	}
}

// WithRevalidateIfStale controls whether loading stale data starts a
// background revalidation.
func WithRevalidateIfStale(revalidate bool) Option {
	return func(o *options) {
		o.revalidateIfStale = revalidate
	}
}
