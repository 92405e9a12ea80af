package manager

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ListCommands runs commands on lists
type ListCommands[K any, V any] struct {
	m *Manager[K, V]
}

// LPush prepends values to the list at key and returns the new length
func (e *ListCommands[K, V]) LPush(ctx context.Context, key K, values ...V) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	vs, err := e.m.encodeValues(values)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.LPush(ctx, k, vs...).Result()
	})
}

// RPush appends values to the list at key and returns the new length
func (e *ListCommands[K, V]) RPush(ctx context.Context, key K, values ...V) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	vs, err := e.m.encodeValues(values)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.RPush(ctx, k, vs...).Result()
	})
}

// LPop removes and returns the first element, found is false for an empty list
func (e *ListCommands[K, V]) LPop(ctx context.Context, key K) (value V, found bool, err error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return value, false, err
	}
	raw, err := run(ctx, e.m, func(c redis.Cmdable) (string, error) {
		return c.LPop(ctx, k).Result()
	})
	return e.m.decodeOptional(raw, err)
}

// RPop removes and returns the last element, found is false for an empty list
func (e *ListCommands[K, V]) RPop(ctx context.Context, key K) (value V, found bool, err error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return value, false, err
	}
	raw, err := run(ctx, e.m, func(c redis.Cmdable) (string, error) {
		return c.RPop(ctx, k).Result()
	})
	return e.m.decodeOptional(raw, err)
}

// LRange returns the elements between start and stop (inclusive, negative counts from the end)
func (e *ListCommands[K, V]) LRange(ctx context.Context, key K, start, stop int64) ([]V, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return nil, err
	}
	raws, err := run(ctx, e.m, func(c redis.Cmdable) ([]string, error) {
		return c.LRange(ctx, k, start, stop).Result()
	})
	if err != nil {
		return nil, err
	}
	return e.m.decodeValues(raws)
}

// LIndex returns the element at index, found is false if the index is out of range
func (e *ListCommands[K, V]) LIndex(ctx context.Context, key K, index int64) (value V, found bool, err error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return value, false, err
	}
	raw, err := run(ctx, e.m, func(c redis.Cmdable) (string, error) {
		return c.LIndex(ctx, k, index).Result()
	})
	return e.m.decodeOptional(raw, err)
}

// LSet replaces the element at index
func (e *ListCommands[K, V]) LSet(ctx context.Context, key K, index int64, value V) error {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return err
	}
	v, err := e.m.encodeValue(value)
	if err != nil {
		return err
	}
	return runErr(ctx, e.m, func(c redis.Cmdable) error {
		return c.LSet(ctx, k, index, v).Err()
	})
}

// LRem removes count occurrences of value (all for count 0, from the tail for count < 0)
func (e *ListCommands[K, V]) LRem(ctx context.Context, key K, count int64, value V) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	v, err := e.m.encodeValue(value)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.LRem(ctx, k, count, v).Result()
	})
}

// LLen returns the length of the list at key
func (e *ListCommands[K, V]) LLen(ctx context.Context, key K) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.LLen(ctx, k).Result()
	})
}

// LInsert inserts value before or after pivot and returns the new length (-1 if pivot is missing)
func (e *ListCommands[K, V]) LInsert(ctx context.Context, key K, before bool, pivot, value V) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	p, err := e.m.encodeValue(pivot)
	if err != nil {
		return 0, err
	}
	v, err := e.m.encodeValue(value)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		if before {
			return c.LInsertBefore(ctx, k, p, v).Result()
		}
		return c.LInsertAfter(ctx, k, p, v).Result()
	})
}
