package manager

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// StringCommands runs commands on string values
type StringCommands[K any, V any] struct {
	m *Manager[K, V]
}

// Set stores value under key without expiration
func (e *StringCommands[K, V]) Set(ctx context.Context, key K, value V) error {
	return e.SetEx(ctx, key, value, 0)
}

// SetEx stores value under key, expiring after ttl (zero means no expiration)
func (e *StringCommands[K, V]) SetEx(ctx context.Context, key K, value V, ttl time.Duration) error {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return err
	}
	v, err := e.m.encodeValue(value)
	if err != nil {
		return err
	}
	return runErr(ctx, e.m, func(c redis.Cmdable) error {
		return c.Set(ctx, k, v, ttl).Err()
	})
}

// SetNX stores value only if key does not exist and reports whether it was stored
func (e *StringCommands[K, V]) SetNX(ctx context.Context, key K, value V, ttl time.Duration) (bool, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return false, err
	}
	v, err := e.m.encodeValue(value)
	if err != nil {
		return false, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (bool, error) {
		return c.SetNX(ctx, k, v, ttl).Result()
	})
}

// Get returns the value of key, found is false if the key does not exist
func (e *StringCommands[K, V]) Get(ctx context.Context, key K) (value V, found bool, err error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return value, false, err
	}
	raw, err := run(ctx, e.m, func(c redis.Cmdable) (string, error) {
		return c.Get(ctx, k).Result()
	})
	return e.m.decodeOptional(raw, err)
}

// GetSet stores value and returns the previous value
func (e *StringCommands[K, V]) GetSet(ctx context.Context, key K, value V) (old V, found bool, err error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return old, false, err
	}
	v, err := e.m.encodeValue(value)
	if err != nil {
		return old, false, err
	}
	raw, err := run(ctx, e.m, func(c redis.Cmdable) (string, error) {
		return c.GetSet(ctx, k, v).Result()
	})
	return e.m.decodeOptional(raw, err)
}

// GetDel returns the value of key and deletes it
func (e *StringCommands[K, V]) GetDel(ctx context.Context, key K) (value V, found bool, err error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return value, false, err
	}
	raw, err := run(ctx, e.m, func(c redis.Cmdable) (string, error) {
		return c.GetDel(ctx, k).Result()
	})
	return e.m.decodeOptional(raw, err)
}

// MGet returns the values of all keys in order, missing keys are not Found
func (e *StringCommands[K, V]) MGet(ctx context.Context, keys ...K) ([]Value[V], error) {
	ks, err := e.m.encodeKeys(keys)
	if err != nil {
		return nil, err
	}
	raws, err := run(ctx, e.m, func(c redis.Cmdable) ([]any, error) {
		return c.MGet(ctx, ks...).Result()
	})
	if err != nil {
		return nil, err
	}
	return e.m.decodeSlots(raws)
}

// Incr increments the integer value of key by one
func (e *StringCommands[K, V]) Incr(ctx context.Context, key K) (int64, error) {
	return e.IncrBy(ctx, key, 1)
}

// IncrBy increments the integer value of key by delta
func (e *StringCommands[K, V]) IncrBy(ctx context.Context, key K, delta int64) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.IncrBy(ctx, k, delta).Result()
	})
}

// Decr decrements the integer value of key by one
func (e *StringCommands[K, V]) Decr(ctx context.Context, key K) (int64, error) {
	return e.DecrBy(ctx, key, 1)
}

// DecrBy decrements the integer value of key by delta
func (e *StringCommands[K, V]) DecrBy(ctx context.Context, key K, delta int64) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.DecrBy(ctx, k, delta).Result()
	})
}

// Append appends value to the value of key and returns the new length
func (e *StringCommands[K, V]) Append(ctx context.Context, key K, value V) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	v, err := e.m.encodeValue(value)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.Append(ctx, k, string(v)).Result()
	})
}

// StrLen returns the length of the value of key
func (e *StringCommands[K, V]) StrLen(ctx context.Context, key K) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.StrLen(ctx, k).Result()
	})
}
