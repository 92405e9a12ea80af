package manager

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// HashCommands runs commands on hashes. Field names are plain strings, field values use the codec.
type HashCommands[K any, V any] struct {
	m *Manager[K, V]
}

// HSet sets field in the hash at key and reports whether the field is new
func (e *HashCommands[K, V]) HSet(ctx context.Context, key K, field string, value V) (bool, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return false, err
	}
	v, err := e.m.encodeValue(value)
	if err != nil {
		return false, err
	}
	added, err := run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.HSet(ctx, k, field, v).Result()
	})
	return added > 0, err
}

// HSetNX sets field only if it does not exist yet
func (e *HashCommands[K, V]) HSetNX(ctx context.Context, key K, field string, value V) (bool, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return false, err
	}
	v, err := e.m.encodeValue(value)
	if err != nil {
		return false, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (bool, error) {
		return c.HSetNX(ctx, k, field, v).Result()
	})
}

// HGet returns the value of field, found is false if the hash or the field does not exist
func (e *HashCommands[K, V]) HGet(ctx context.Context, key K, field string) (value V, found bool, err error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return value, false, err
	}
	raw, err := run(ctx, e.m, func(c redis.Cmdable) (string, error) {
		return c.HGet(ctx, k, field).Result()
	})
	return e.m.decodeOptional(raw, err)
}

// HMGet returns the values of fields in order, missing fields are not Found
func (e *HashCommands[K, V]) HMGet(ctx context.Context, key K, fields ...string) ([]Value[V], error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return nil, err
	}
	raws, err := run(ctx, e.m, func(c redis.Cmdable) ([]any, error) {
		return c.HMGet(ctx, k, fields...).Result()
	})
	if err != nil {
		return nil, err
	}
	return e.m.decodeSlots(raws)
}

// HDel deletes fields and returns the number of removed fields
func (e *HashCommands[K, V]) HDel(ctx context.Context, key K, fields ...string) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.HDel(ctx, k, fields...).Result()
	})
}

// HGetAll returns all fields and values of the hash at key
func (e *HashCommands[K, V]) HGetAll(ctx context.Context, key K) (map[string]V, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return nil, err
	}
	raws, err := run(ctx, e.m, func(c redis.Cmdable) (map[string]string, error) {
		return c.HGetAll(ctx, k).Result()
	})
	if err != nil {
		return nil, err
	}
	out := make(map[string]V, len(raws))
	for field, raw := range raws {
		v, err := e.m.decodeValue(raw)
		if err != nil {
			return nil, err
		}
		out[field] = v
	}
	return out, nil
}

// HKeys returns the field names of the hash at key
func (e *HashCommands[K, V]) HKeys(ctx context.Context, key K) ([]string, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return nil, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) ([]string, error) {
		return c.HKeys(ctx, k).Result()
	})
}

// HVals returns the values of the hash at key
func (e *HashCommands[K, V]) HVals(ctx context.Context, key K) ([]V, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return nil, err
	}
	raws, err := run(ctx, e.m, func(c redis.Cmdable) ([]string, error) {
		return c.HVals(ctx, k).Result()
	})
	if err != nil {
		return nil, err
	}
	return e.m.decodeValues(raws)
}

// HLen returns the number of fields of the hash at key
func (e *HashCommands[K, V]) HLen(ctx context.Context, key K) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.HLen(ctx, k).Result()
	})
}

// HExists reports whether field exists in the hash at key
func (e *HashCommands[K, V]) HExists(ctx context.Context, key K, field string) (bool, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return false, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (bool, error) {
		return c.HExists(ctx, k, field).Result()
	})
}

// HIncrBy increments the integer value of field by delta
func (e *HashCommands[K, V]) HIncrBy(ctx context.Context, key K, field string, delta int64) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.HIncrBy(ctx, k, field, delta).Result()
	})
}
