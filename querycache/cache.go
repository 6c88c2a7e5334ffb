package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/teamops/dashboard/config"
	"github.com/teamops/dashboard/logging/logger"
	"golang.org/x/sync/singleflight"
)

// Defaults
const (
	DefaultStaleTime  = 5 * time.Minute
	DefaultRetryDelay = time.Second
)

// Cache is a keyed query cache.
type Cache struct {
	backend    Backend
	group      singleflight.Group
	staleTime  time.Duration
	retryDelay time.Duration
	now        func() time.Time

	mu          sync.Mutex
	nextID      int
	subscribers map[int]func(Key)
}

// Option configures a Cache.
type Option func(*Cache)

// WithStaleTime sets the stale time used when Fetch is given zero.
func WithStaleTime(d time.Duration) Option {
	return func(c *Cache) { c.staleTime = d }
}

// WithRetryDelay sets the pause before the single retry.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Cache) { c.retryDelay = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a cache over backend. A nil backend is in memory.
func New(backend Backend, opts ...Option) *Cache {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	c := &Cache{
		backend:     backend,
		staleTime:   DefaultStaleTime,
		retryDelay:  DefaultRetryDelay,
		now:         time.Now,
		subscribers: make(map[int]func(Key)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a cache from cfg. rc is required for the redis backend.
func NewFromConfig(cfg *config.Cache, rc *redis.Client) (*Cache, error) {
	if cfg == nil {
		return New(nil), nil
	}
	var backend Backend
	switch cfg.Backend {
	case "", "memory":
		backend = NewMemoryBackend()
	case "redis":
		if rc == nil {
			return nil, fmt.Errorf("querycache: redis backend requires data.redis.addr")
		}
		backend = NewRedisBackend(rc, cfg.KeyPrefix, 0)
	default:
		return nil, fmt.Errorf("querycache: unknown backend %q", cfg.Backend)
	}
	return New(backend, WithStaleTime(cfg.StaleTime), WithRetryDelay(cfg.RetryDelay)), nil
}

// Fetch returns the cached value of key when it is fresh and otherwise calls
// fetch, retrying once on failure. A zero staleTime uses the cache default.
func Fetch[T any](ctx context.Context, c *Cache, key Key, staleTime time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	if staleTime <= 0 {
		staleTime = c.staleTime
	}
	k := key.String()

	if e, err := c.backend.Get(ctx, k); err != nil {
		logger.Warn(ctx, "query cache read failed", "key", k, "error", err)
	} else if e != nil && !e.Invalidated && c.now().Sub(e.FetchedAt) < staleTime {
		var v T
		if err := json.Unmarshal(e.Data, &v); err == nil {
			return v, nil
		}
	}

	raw, err, _ := c.group.Do(k, func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			logger.Debug(ctx, "query fetch failed, retrying", "key", k, "error", err)
			select {
			case <-ctx.Done():
				return nil, err
			case <-time.After(c.retryDelay):
			}
			v, err = fetch(ctx)
			if err != nil {
				return nil, err
			}
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("querycache: encode %s: %w", k, err)
		}
		if err := c.backend.Set(ctx, k, &Entry{Data: data, FetchedAt: c.now()}); err != nil {
			logger.Warn(ctx, "query cache write failed", "key", k, "error", err)
		}
		return json.RawMessage(data), nil
	})
	if err != nil {
		return zero, err
	}

	var v T
	if err := json.Unmarshal(raw.(json.RawMessage), &v); err != nil {
		return zero, fmt.Errorf("querycache: decode %s: %w", k, err)
	}
	return v, nil
}

// GetData returns the cached value of key regardless of staleness.
func GetData[T any](ctx context.Context, c *Cache, key Key) (T, bool, error) {
	var v T
	e, err := c.backend.Get(ctx, key.String())
	if err != nil || e == nil {
		return v, false, err
	}
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return v, false, fmt.Errorf("querycache: decode %s: %w", key, err)
	}
	return v, true, nil
}

// SetData replaces the cached value of key and marks it fresh.
func (c *Cache) SetData(ctx context.Context, key Key, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("querycache: encode %s: %w", key, err)
	}
	return c.backend.Set(ctx, key.String(), &Entry{Data: data, FetchedAt: c.now()})
}

// IsStale reports whether key must be refetched. Missing keys are stale.
func (c *Cache) IsStale(ctx context.Context, key Key, staleTime time.Duration) (bool, error) {
	if staleTime <= 0 {
		staleTime = c.staleTime
	}
	e, err := c.backend.Get(ctx, key.String())
	if err != nil || e == nil {
		return true, err
	}
	return e.Invalidated || c.now().Sub(e.FetchedAt) >= staleTime, nil
}

// Invalidate marks every key starting with prefix stale and notifies
// subscribers.
func (c *Cache) Invalidate(ctx context.Context, prefix Key) error {
	keys, err := c.matching(ctx, prefix)
	if err != nil {
		return err
	}
	for _, k := range keys {
		e, err := c.backend.Get(ctx, k)
		if err != nil {
			return err
		}
		if e == nil || e.Invalidated {
			continue
		}
		e.Invalidated = true
		if err := c.backend.Set(ctx, k, e); err != nil {
			return err
		}
	}
	c.notify(prefix)
	return nil
}

// Remove deletes every key starting with prefix.
func (c *Cache) Remove(ctx context.Context, prefix Key) error {
	keys, err := c.matching(ctx, prefix)
	if err != nil {
		return err
	}
	return c.backend.Delete(ctx, keys...)
}

// Subscribe calls fn with the prefix of every invalidation. The returned
// function unsubscribes.
func (c *Cache) Subscribe(fn func(Key)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.subscribers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

func (c *Cache) notify(prefix Key) {
	c.mu.Lock()
	fns := make([]func(Key), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(prefix)
	}
}

func (c *Cache) matching(ctx context.Context, prefix Key) ([]string, error) {
	all, err := c.backend.Keys(ctx)
	if err != nil {
		return nil, err
	}
	p := prefix.String()
	keys := all[:0]
	for _, k := range all {
		if hasPrefix(k, p) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Snapshot returns a copy of every entry starting with prefix.
func (c *Cache) Snapshot(ctx context.Context, prefix Key) (map[string]*Entry, error) {
	keys, err := c.matching(ctx, prefix)
	if err != nil {
		return nil, err
	}
	snap := make(map[string]*Entry, len(keys))
	for _, k := range keys {
		e, err := c.backend.Get(ctx, k)
		if err != nil {
			return nil, err
		}
		if e != nil {
			snap[k] = e
		}
	}
	return snap, nil
}

// Restore writes a snapshot back.
func (c *Cache) Restore(ctx context.Context, snap map[string]*Entry) error {
	for k, e := range snap {
		if err := c.backend.Set(ctx, k, e); err != nil {
			return err
		}
	}
	return nil
}

// UpdateData rewrites every entry starting with prefix through fn and
// returns the previous entries for Restore. Entries that do not decode as T
// are left alone.
func UpdateData[T any](ctx context.Context, c *Cache, prefix Key, fn func(T) T) (map[string]*Entry, error) {
	snap, err := c.Snapshot(ctx, prefix)
	if err != nil {
		return nil, err
	}
	for k, e := range snap {
		var v T
		if err := json.Unmarshal(e.Data, &v); err != nil {
			continue
		}
		data, err := json.Marshal(fn(v))
		if err != nil {
			return snap, fmt.Errorf("querycache: encode %s: %w", k, err)
		}
		if err := c.backend.Set(ctx, k, &Entry{Data: data, FetchedAt: e.FetchedAt, Invalidated: e.Invalidated}); err != nil {
			return snap, err
		}
	}
	return snap, nil
}
