package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry is a cached query result.
type Entry struct {
	Data        json.RawMessage `json:"data"`
	FetchedAt   time.Time       `json:"fetchedAt"`
	Invalidated bool            `json:"invalidated,omitempty"`
}

// Backend stores entries by encoded key.
type Backend interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, e *Entry) error
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context) ([]string, error)
}

// MemoryBackend keeps entries in process memory.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string]Entry)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *MemoryBackend) Set(_ context.Context, key string, e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = *e
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *MemoryBackend) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys, nil
}

// RedisBackend stores entries as JSON strings under a key prefix.
type RedisBackend struct {
	rc     *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisBackend creates a backend using rc. A zero ttl keeps entries until
// they are removed.
func NewRedisBackend(rc *redis.Client, prefix string, ttl time.Duration) *RedisBackend {
	return &RedisBackend{rc: rc, prefix: prefix, ttl: ttl}
}

// Key returns the namespaced key
func (r *RedisBackend) Key(field string) string {
	return r.prefix + field
}

func (r *RedisBackend) Get(ctx context.Context, key string) (*Entry, error) {
	if r.rc == nil {
		return nil, errors.New("redis client is nil, cannot get cache")
	}
	result, err := r.rc.Get(ctx, r.Key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}
	var e Entry
	if err := json.Unmarshal([]byte(result), &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return &e, nil
}

func (r *RedisBackend) Set(ctx context.Context, key string, e *Entry) error {
	if r.rc == nil {
		return errors.New("redis client is nil, cannot set cache")
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	if err := r.rc.Set(ctx, r.Key(key), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, keys ...string) error {
	if r.rc == nil {
		return errors.New("redis client is nil, cannot delete cache")
	}
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.Key(k)
	}
	if err := r.rc.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

func (r *RedisBackend) Keys(ctx context.Context) ([]string, error) {
	if r.rc == nil {
		return nil, errors.New("redis client is nil, cannot scan cache")
	}
	var keys []string
	iter := r.rc.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), r.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan cache: %w", err)
	}
	return keys, nil
}
