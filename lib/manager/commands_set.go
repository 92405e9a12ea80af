package manager

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// SetCommands runs commands on unordered sets
type SetCommands[K any, V any] struct {
	m *Manager[K, V]
}

// SAdd adds members to the set at key and returns the number of new members
func (e *SetCommands[K, V]) SAdd(ctx context.Context, key K, members ...V) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	ms, err := e.m.encodeValues(members)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.SAdd(ctx, k, ms...).Result()
	})
}

// SRem removes members from the set at key and returns the number of removed members
func (e *SetCommands[K, V]) SRem(ctx context.Context, key K, members ...V) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	ms, err := e.m.encodeValues(members)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.SRem(ctx, k, ms...).Result()
	})
}

// SIsMember reports whether member is in the set at key
func (e *SetCommands[K, V]) SIsMember(ctx context.Context, key K, member V) (bool, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return false, err
	}
	m, err := e.m.encodeValue(member)
	if err != nil {
		return false, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (bool, error) {
		return c.SIsMember(ctx, k, m).Result()
	})
}

// SMembers returns all members of the set at key
func (e *SetCommands[K, V]) SMembers(ctx context.Context, key K) ([]V, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return nil, err
	}
	raws, err := run(ctx, e.m, func(c redis.Cmdable) ([]string, error) {
		return c.SMembers(ctx, k).Result()
	})
	if err != nil {
		return nil, err
	}
	return e.m.decodeValues(raws)
}

// SCard returns the number of members of the set at key
func (e *SetCommands[K, V]) SCard(ctx context.Context, key K) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.SCard(ctx, k).Result()
	})
}

// SPop removes and returns a random member, found is false for an empty set
func (e *SetCommands[K, V]) SPop(ctx context.Context, key K) (member V, found bool, err error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return member, false, err
	}
	raw, err := run(ctx, e.m, func(c redis.Cmdable) (string, error) {
		return c.SPop(ctx, k).Result()
	})
	return e.m.decodeOptional(raw, err)
}

// SRandMember returns a random member without removing it
func (e *SetCommands[K, V]) SRandMember(ctx context.Context, key K) (member V, found bool, err error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return member, false, err
	}
	raw, err := run(ctx, e.m, func(c redis.Cmdable) (string, error) {
		return c.SRandMember(ctx, k).Result()
	})
	return e.m.decodeOptional(raw, err)
}

// SDiff returns the members of the first set that are in none of the others
func (e *SetCommands[K, V]) SDiff(ctx context.Context, keys ...K) ([]V, error) {
	return e.combine(ctx, keys, func(c redis.Cmdable, ks []string) *redis.StringSliceCmd {
		return c.SDiff(ctx, ks...)
	})
}

// SInter returns the members present in all sets
func (e *SetCommands[K, V]) SInter(ctx context.Context, keys ...K) ([]V, error) {
	return e.combine(ctx, keys, func(c redis.Cmdable, ks []string) *redis.StringSliceCmd {
		return c.SInter(ctx, ks...)
	})
}

// SUnion returns the members present in any of the sets
func (e *SetCommands[K, V]) SUnion(ctx context.Context, keys ...K) ([]V, error) {
	return e.combine(ctx, keys, func(c redis.Cmdable, ks []string) *redis.StringSliceCmd {
		return c.SUnion(ctx, ks...)
	})
}

func (e *SetCommands[K, V]) combine(ctx context.Context, keys []K, cmd func(c redis.Cmdable, ks []string) *redis.StringSliceCmd) ([]V, error) {
	ks, err := e.m.encodeKeys(keys)
	if err != nil {
		return nil, err
	}
	raws, err := run(ctx, e.m, func(c redis.Cmdable) ([]string, error) {
		return cmd(c, ks).Result()
	})
	if err != nil {
		return nil, err
	}
	return e.m.decodeValues(raws)
}
