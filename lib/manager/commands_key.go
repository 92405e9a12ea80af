package manager

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyCommands runs commands that work on keys of any type
type KeyCommands[K any, V any] struct {
	m *Manager[K, V]
}

// Del deletes keys and returns the number of deleted keys
func (e *KeyCommands[K, V]) Del(ctx context.Context, keys ...K) (int64, error) {
	ks, err := e.m.encodeKeys(keys)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.Del(ctx, ks...).Result()
	})
}

// Exists returns how many of keys exist
func (e *KeyCommands[K, V]) Exists(ctx context.Context, keys ...K) (int64, error) {
	ks, err := e.m.encodeKeys(keys)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.Exists(ctx, ks...).Result()
	})
}

// Expire sets a timeout on key, false if the key does not exist
func (e *KeyCommands[K, V]) Expire(ctx context.Context, key K, ttl time.Duration) (bool, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return false, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (bool, error) {
		return c.Expire(ctx, k, ttl).Result()
	})
}

// TTL returns the remaining time to live of key.
// A negative duration means no timeout (-1) or no such key (-2), as reported by the server.
func (e *KeyCommands[K, V]) TTL(ctx context.Context, key K) (time.Duration, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (time.Duration, error) {
		return c.TTL(ctx, k).Result()
	})
}

// Persist removes the timeout of key
func (e *KeyCommands[K, V]) Persist(ctx context.Context, key K) (bool, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return false, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (bool, error) {
		return c.Persist(ctx, k).Result()
	})
}

// Type returns the type of the value stored at key ("none" if it does not exist)
func (e *KeyCommands[K, V]) Type(ctx context.Context, key K) (string, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return "", err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (string, error) {
		return c.Type(ctx, k).Result()
	})
}

// Rename renames key to newKey
func (e *KeyCommands[K, V]) Rename(ctx context.Context, key, newKey K) error {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return err
	}
	nk, err := e.m.encodeKey(newKey)
	if err != nil {
		return err
	}
	return runErr(ctx, e.m, func(c redis.Cmdable) error {
		return c.Rename(ctx, k, nk).Err()
	})
}

// RandomKey returns a random key, found is false if the database is empty
func (e *KeyCommands[K, V]) RandomKey(ctx context.Context) (key K, found bool, err error) {
	raw, err := run(ctx, e.m, func(c redis.Cmdable) (string, error) {
		return c.RandomKey(ctx).Result()
	})
	if isNil(err) {
		return key, false, nil
	}
	if err != nil {
		return key, false, err
	}
	key, err = e.m.decodeKey(raw)
	return key, err == nil, err
}

// Keys returns all keys matching pattern
func (e *KeyCommands[K, V]) Keys(ctx context.Context, pattern string) ([]K, error) {
	raws, err := run(ctx, e.m, func(c redis.Cmdable) ([]string, error) {
		return c.Keys(ctx, pattern).Result()
	})
	if err != nil {
		return nil, err
	}
	return e.m.decodeKeys(raws)
}
