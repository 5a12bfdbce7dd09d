// Package requestcache deduplicates logically-identical in-flight requests.
//
// For any key at most one producer runs at a time; callers that arrive while
// it is pending share its outcome, success or failure. An entry is evicted
// the instant its producer settles; the TTL timer is only a safety net
// against producers that never settle. Failures are never cached: the next
// call after a failed producer starts a fresh one.
package requestcache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultTTL bounds how long a stuck entry can occupy its key.
const DefaultTTL = time.Second

type entry struct {
	done  chan struct{}
	val   any
	err   error
	timer Timer
}

// Cache is the pending-entry arena. The zero value is not usable; construct
// with New.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	clock   Clock
	ttl     time.Duration
}

// Option configures a Cache during New.
type Option func(*Cache)

// WithClock injects a Clock, used by tests to advance virtual time.
func WithClock(clk Clock) Option {
	return func(c *Cache) { c.clock = clk }
}

// WithTTL overrides the default safety-net TTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// New constructs an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]*entry),
		clock:   realClock{},
		ttl:     DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dedupe runs producer under key with the cache's default TTL.
func (c *Cache) Dedupe(ctx context.Context, key string, producer func() (any, error)) (any, error) {
	return c.DedupeTTL(ctx, key, producer, c.ttl)
}

// DedupeTTL runs producer under key, sharing any pending invocation.
//
// A caller whose ctx is cancelled stops waiting but the producer runs to
// completion; later joiners of the same entry still observe its outcome.
func (c *Cache) DedupeTTL(ctx context.Context, key string, producer func() (any, error), ttl time.Duration) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		dedupeSharedTotal.Inc()
		return wait(ctx, e)
	}

	e := &entry{done: make(chan struct{})}
	c.entries[key] = e
	e.timer = c.clock.AfterFunc(ttl, func() { c.expire(key, e) })
	c.mu.Unlock()

	dedupeStartedTotal.Inc()
	go func() {
		defer close(e.done)
		defer c.settle(key, e)
		defer func() {
			if r := recover(); r != nil {
				e.err = fmt.Errorf("request producer panicked: %v", r)
			}
		}()
		e.val, e.err = producer()
	}()

	return wait(ctx, e)
}

// Clear drops every entry and cancels its timer. Pending producers still run
// to completion, but no new caller will join them. Used on sign-out so
// in-flight results cannot leak across identities.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		e.timer.Stop()
	}
	c.entries = make(map[string]*entry)
}

// Len reports the number of pending entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func wait(ctx context.Context, e *entry) (any, error) {
	select {
	case <-e.done:
		return e.val, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// settle removes the entry as soon as its producer finishes, success or
// failure, and cancels the TTL timer.
func (c *Cache) settle(key string, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.entries[key]; ok && cur == e {
		delete(c.entries, key)
	}
	e.timer.Stop()
}

// expire is the TTL fallback for producers that never settle. It only frees
// the key; waiters already attached to the entry keep waiting on it.
func (c *Cache) expire(key string, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.entries[key]; ok && cur == e {
		delete(c.entries, key)
		dedupeExpiredTotal.Inc()
	}
}

// Dedupe is the typed wrapper around Cache.Dedupe. Callers joining the same
// key must agree on T.
func Dedupe[T any](ctx context.Context, c *Cache, key string, producer func() (T, error)) (T, error) {
	var zero T
	v, err := c.Dedupe(ctx, key, func() (any, error) { return producer() })
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("request cache: key %q holds %T", key, v)
	}
	return out, nil
}
