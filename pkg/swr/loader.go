package swr

import (
	"context"
	"errors"
)

// ErrDisabled is returned by Mutate on a disabled query.
var ErrDisabled = errors.New("query is disabled")

// loader holds what Query and Single share: a key into the cache and the
// function that fills it.
type loader struct {
	cache *Cache
	key   *Key
	opts  options
	fetch FetchFunc
}

func newLoader(cache *Cache, key Key, fetch FetchFunc, opts []Option) loader {
	o := newOptions(cache, opts)
	l := loader{
		cache: cache,
		opts:  o,
		fetch: fetch,
	}
	if o.enabled {
		l.key = &key
	}
	return l
}

// load returns the cached state of the key, fetching first when nothing is
// cached yet. Stale data is returned straight away with a revalidation
// started in the background.
func (l *loader) load(ctx context.Context) Snapshot {
	if l.key == nil {
		return Snapshot{}
	}
	key := l.key.String()

	snap := l.cache.Get(key)
	if snap.HasValue {
		l.cache.metrics.CacheHit()
		if l.fresh(snap) || !l.opts.revalidateIfStale {
			return snap
		}
		go func() {
			_, _ = l.cache.Fetch(context.WithoutCancel(ctx), key, l.fetch)
		}()
		snap.Validating = true
		return snap
	}

	l.cache.metrics.CacheMiss()
	_, err := l.cache.Fetch(ctx, key, l.fetch)
	snap = l.cache.Get(key)
	if err != nil && snap.Err == nil {
		// The caller stopped waiting before the shared fetch finished.
		snap.Err = err
	}
	return snap
}

func (l *loader) fresh(snap Snapshot) bool {
	return l.cache.now().Sub(snap.FetchedAt) < l.opts.dedupingInterval
}

// mutate issues a new request even when a revalidation is already running.
func (l *loader) mutate(ctx context.Context) (any, error) {
	if l.key == nil {
		return nil, ErrDisabled
	}
	return l.cache.Revalidate(ctx, l.key.String(), l.fetch)
}

func (l *loader) snapshot() Snapshot {
	if l.key == nil {
		return Snapshot{}
	}
	return l.cache.Get(l.key.String())
}

func (l *loader) subscribe(fn func()) func() {
	if l.key == nil {
		return func() {}
	}
	return l.cache.Subscribe(l.key.String(), fn)
}

// isLoading reports a first fetch in flight: no data and no error yet.
func isLoading(snap Snapshot) bool {
	return snap.Validating && !snap.HasValue && snap.Err == nil
}
