package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps values under a key prefix in Redis.
type RedisBackend struct {
	rc     *redis.Client
	prefix string
}

// NewRedisBackend creates a backend using rc. prefix namespaces every key.
func NewRedisBackend(rc *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{rc: rc, prefix: prefix}
}

// NewRedis creates a Store kept in Redis.
func NewRedis(rc *redis.Client, prefix string) *Session {
	return New(NewRedisBackend(rc, prefix))
}

// Key returns the namespaced key
func (r *RedisBackend) Key(field string) string {
	return r.prefix + field
}

func (r *RedisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	if r.rc == nil {
		return "", false, errors.New("redis client is nil, cannot get session")
	}
	v, err := r.rc.Get(ctx, r.Key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get session key: %w", err)
	}
	return v, true, nil
}

func (r *RedisBackend) Set(ctx context.Context, key, value string) error {
	if r.rc == nil {
		return errors.New("redis client is nil, cannot set session")
	}
	if err := r.rc.Set(ctx, r.Key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set session key: %w", err)
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, keys ...string) error {
	if r.rc == nil {
		return errors.New("redis client is nil, cannot delete session")
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.Key(k)
	}
	if err := r.rc.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete session keys: %w", err)
	}
	return nil
}
