package manager

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// SortedSetCommands runs commands on sorted sets
type SortedSetCommands[K any, V any] struct {
	m *Manager[K, V]
}

// ZAdd adds members with their scores and returns the number of new members
func (e *SortedSetCommands[K, V]) ZAdd(ctx context.Context, key K, members ...ScoredMember[V]) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	zs := make([]redis.Z, 0, len(members))
	for _, member := range members {
		m, err := e.m.encodeValue(member.Member)
		if err != nil {
			return 0, err
		}
		zs = append(zs, redis.Z{Score: member.Score, Member: m})
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.ZAdd(ctx, k, zs...).Result()
	})
}

// ZRem removes members and returns the number of removed members
func (e *SortedSetCommands[K, V]) ZRem(ctx context.Context, key K, members ...V) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	ms, err := e.m.encodeValues(members)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.ZRem(ctx, k, ms...).Result()
	})
}

// ZScore returns the score of member, found is false if it is not in the set
func (e *SortedSetCommands[K, V]) ZScore(ctx context.Context, key K, member V) (score float64, found bool, err error) {
	k, m, err := e.keyAndMember(key, member)
	if err != nil {
		return 0, false, err
	}
	score, err = run(ctx, e.m, func(c redis.Cmdable) (float64, error) {
		return c.ZScore(ctx, k, m).Result()
	})
	return optionalNumber(score, err)
}

// ZRank returns the rank of member by ascending score
func (e *SortedSetCommands[K, V]) ZRank(ctx context.Context, key K, member V) (rank int64, found bool, err error) {
	k, m, err := e.keyAndMember(key, member)
	if err != nil {
		return 0, false, err
	}
	rank, err = run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.ZRank(ctx, k, m).Result()
	})
	return optionalNumber(rank, err)
}

// ZRevRank returns the rank of member by descending score
func (e *SortedSetCommands[K, V]) ZRevRank(ctx context.Context, key K, member V) (rank int64, found bool, err error) {
	k, m, err := e.keyAndMember(key, member)
	if err != nil {
		return 0, false, err
	}
	rank, err = run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.ZRevRank(ctx, k, m).Result()
	})
	return optionalNumber(rank, err)
}

// ZRange returns the members between the ranks start and stop by ascending score
func (e *SortedSetCommands[K, V]) ZRange(ctx context.Context, key K, start, stop int64) ([]V, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return nil, err
	}
	raws, err := run(ctx, e.m, func(c redis.Cmdable) ([]string, error) {
		return c.ZRange(ctx, k, start, stop).Result()
	})
	if err != nil {
		return nil, err
	}
	return e.m.decodeValues(raws)
}

// ZRangeWithScores is ZRange including the scores
func (e *SortedSetCommands[K, V]) ZRangeWithScores(ctx context.Context, key K, start, stop int64) ([]ScoredMember[V], error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return nil, err
	}
	zs, err := run(ctx, e.m, func(c redis.Cmdable) ([]redis.Z, error) {
		return c.ZRangeWithScores(ctx, k, start, stop).Result()
	})
	if err != nil {
		return nil, err
	}
	out := make([]ScoredMember[V], 0, len(zs))
	for _, z := range zs {
		raw, _ := z.Member.(string)
		v, err := e.m.decodeValue(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, ScoredMember[V]{Score: z.Score, Member: v})
	}
	return out, nil
}

// ZCard returns the number of members of the sorted set at key
func (e *SortedSetCommands[K, V]) ZCard(ctx context.Context, key K) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.ZCard(ctx, k).Result()
	})
}

// ZIncrBy increments the score of member by delta and returns the new score
func (e *SortedSetCommands[K, V]) ZIncrBy(ctx context.Context, key K, delta float64, member V) (float64, error) {
	k, m, err := e.keyAndMember(key, member)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (float64, error) {
		return c.ZIncrBy(ctx, k, delta, m).Result()
	})
}

// ZCount counts the members with a score between min and max.
// The bounds use the server syntax ("1", "(1", "-inf", "+inf").
func (e *SortedSetCommands[K, V]) ZCount(ctx context.Context, key K, min, max string) (int64, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return 0, err
	}
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.ZCount(ctx, k, min, max).Result()
	})
}

func (e *SortedSetCommands[K, V]) keyAndMember(key K, member V) (string, string, error) {
	k, err := e.m.encodeKey(key)
	if err != nil {
		return "", "", err
	}
	m, err := e.m.encodeValue(member)
	if err != nil {
		return "", "", err
	}
	return k, string(m), nil
}

// optionalNumber maps the nil reply of ZSCORE and ZRANK to found=false
func optionalNumber[N int64 | float64](n N, err error) (N, bool, error) {
	if isNil(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}
