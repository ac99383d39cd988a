package swr

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/doctorq/doctorq-sdk/pkg/metrics"
)

// FetchFunc loads the value for a key.
type FetchFunc func(ctx context.Context) (any, error)

// CacheConfig holds configuration for a Cache.
type CacheConfig struct {
	Size             int           // Max entries (default: 500)
	DedupingInterval time.Duration // Loads within this window reuse data (default: 2s)
	Logger           hclog.Logger  // Logger (optional)
	Metrics          *metrics.Metrics
}

// Cache stores the last result of each read and coalesces identical
// in-flight fetches.
type Cache struct {
	mu      sync.Mutex
	store   *lru.Cache[string, *entry]
	group   singleflight.Group
	subs    map[string]map[uint64]func()
	nextSub uint64
	gen     uint64
	// deleting suppresses the eviction metric while Delete removes a key.
	deleting bool

	dedupingInterval time.Duration
	logger           hclog.Logger
	metrics          *metrics.Metrics
	now              func() time.Time
}

type entry struct {
	value     any
	hasValue  bool
	err       error
	updatedAt time.Time // last successful fetch or Set
	fetchedAt time.Time // last completed fetch, successful or not
	fetching  int
	gen       uint64 // generation of the newest fetch started
}

// Snapshot is a point-in-time copy of an entry.
type Snapshot struct {
	Value      any
	HasValue   bool
	Err        error
	UpdatedAt  time.Time
	FetchedAt  time.Time
	Validating bool
}

// NewCache creates a new Cache.
func NewCache(cfg CacheConfig) (*Cache, error) {
	if cfg.Size <= 0 {
		cfg.Size = 500
	}
	if cfg.DedupingInterval == 0 {
		cfg.DedupingInterval = 2 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	c := &Cache{
		subs:             make(map[string]map[uint64]func()),
		dedupingInterval: cfg.DedupingInterval,
		logger:           cfg.Logger.Named("swr-cache"),
		metrics:          cfg.Metrics,
		now:              time.Now,
	}

	// The callback runs inside Add or Remove, with c.mu held.
	store, err := lru.NewWithEvict[string, *entry](cfg.Size, func(key string, _ *entry) {
		if !c.deleting {
			c.metrics.CacheEvicted()
		}
	})
	if err != nil {
		return nil, err
	}
	c.store = store

	return c, nil
}

// DedupingInterval returns the default freshness window.
func (c *Cache) DedupingInterval() time.Duration {
	return c.dedupingInterval
}

// Get returns a snapshot of key. A missing key yields the zero Snapshot.
func (c *Cache) Get(key string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.store.Peek(key)
	if !ok {
		return Snapshot{}
	}
	return e.snapshot()
}

// Fetch runs fn for key, sharing a single call among concurrent callers of
// the same key. The shared call is detached from the cancellation of the
// caller that started it; each caller stops waiting when its own ctx ends.
func (c *Cache) Fetch(ctx context.Context, key string, fn FetchFunc) (any, error) {
	return c.wait(ctx, c.start(ctx, key, fn))
}

// Revalidate always starts a new call of fn for key, even when another fetch
// of key is in flight. Callers of Fetch that arrive afterwards share the new
// call, and the result of any older call is discarded when it completes.
func (c *Cache) Revalidate(ctx context.Context, key string, fn FetchFunc) (any, error) {
	c.group.Forget(key)
	return c.wait(ctx, c.start(ctx, key, fn))
}

func (c *Cache) start(ctx context.Context, key string, fn FetchFunc) <-chan singleflight.Result {
	detached := context.WithoutCancel(ctx)

	return c.group.DoChan(key, func() (any, error) {
		gen := c.begin(key)
		value, err := fn(detached)
		c.finish(key, gen, value, err)
		return value, err
	})
}

func (c *Cache) wait(ctx context.Context, ch <-chan singleflight.Result) (any, error) {
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Set stores value for key as if it had just been fetched and notifies
// subscribers.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	e := c.entryLocked(key)
	now := c.now()
	e.value = value
	e.hasValue = true
	e.err = nil
	e.updatedAt = now
	e.fetchedAt = now
	c.mu.Unlock()

	c.notify(key)
}

// Delete removes key. Subscribers are notified.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	c.deleting = true
	c.store.Remove(key)
	c.deleting = false
	c.mu.Unlock()

	c.notify(key)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.store.Len()
}

// Subscribe registers fn to be called after every state change of key. The
// returned function unsubscribes.
func (c *Cache) Subscribe(key string, fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextSub++
	id := c.nextSub
	if c.subs[key] == nil {
		c.subs[key] = make(map[uint64]func())
	}
	c.subs[key][id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs[key], id)
		if len(c.subs[key]) == 0 {
			delete(c.subs, key)
		}
	}
}

func (c *Cache) begin(key string) uint64 {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	e := c.entryLocked(key)
	e.fetching++
	e.gen = gen
	c.mu.Unlock()

	c.notify(key)
	return gen
}

// finish records the result of the fetch started as gen. A result older
// than the newest fetch started for key only clears its in-flight mark.
func (c *Cache) finish(key string, gen uint64, value any, err error) {
	c.mu.Lock()
	e := c.entryLocked(key)
	now := c.now()
	if e.fetching > 0 {
		e.fetching--
	}
	superseded := gen < e.gen
	switch {
	case superseded:
	case err != nil:
		e.fetchedAt = now
		e.err = err
	default:
		e.fetchedAt = now
		e.value = value
		e.hasValue = true
		e.err = nil
		e.updatedAt = now
	}
	c.mu.Unlock()

	c.metrics.Revalidated(err)
	if superseded {
		c.logger.Debug("discarding superseded fetch", "key", key)
	} else if err != nil {
		c.logger.Debug("fetch failed", "key", key, "error", err)
	}

	c.notify(key)
}

// entryLocked returns the entry for key, creating it if needed. c.mu must
// be held.
func (c *Cache) entryLocked(key string) *entry {
	if e, ok := c.store.Get(key); ok {
		return e
	}
	e := &entry{}
	c.store.Add(key, e)
	return e
}

func (c *Cache) notify(key string) {
	c.mu.Lock()
	fns := make([]func(), 0, len(c.subs[key]))
	for _, fn := range c.subs[key] {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (e *entry) snapshot() Snapshot {
	return Snapshot{
		Value:      e.value,
		HasValue:   e.hasValue,
		Err:        e.err,
		UpdatedAt:  e.updatedAt,
		FetchedAt:  e.fetchedAt,
		Validating: e.fetching > 0,
	}
}
