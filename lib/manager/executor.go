package manager

import (
	"context"
	"errors"

	"github.com/ValentinKolb/kvconn/lib/connector"
	"github.com/redis/go-redis/v9"
)

// Category identifies a group of commands with its own executor
type Category int

const (
	CategoryConnection Category = iota
	CategoryString
	CategoryKey
	CategoryHash
	CategorySet
	CategoryList
	CategorySortedSet
)

// String returns the name of the category
func (c Category) String() string {
	switch c {
	case CategoryConnection:
		return "connection"
	case CategoryString:
		return "string"
	case CategoryKey:
		return "key"
	case CategoryHash:
		return "hash"
	case CategorySet:
		return "set"
	case CategoryList:
		return "list"
	case CategorySortedSet:
		return "sorted set"
	default:
		return "unknown"
	}
}

// Value is a decoded value that may be missing
type Value[V any] struct {
	Value V
	Found bool
}

// ScoredMember is a member of a sorted set with its score
type ScoredMember[V any] struct {
	Score  float64
	Member V
}

// ConnectionCommands returns the executor for connection commands
func (m *Manager[K, V]) ConnectionCommands() *ConnectionCommands[K, V] {
	return executor(m, CategoryConnection, func() *ConnectionCommands[K, V] { return &ConnectionCommands[K, V]{m: m} })
}

// StringCommands returns the executor for string commands
func (m *Manager[K, V]) StringCommands() *StringCommands[K, V] {
	return executor(m, CategoryString, func() *StringCommands[K, V] { return &StringCommands[K, V]{m: m} })
}

// KeyCommands returns the executor for key commands
func (m *Manager[K, V]) KeyCommands() *KeyCommands[K, V] {
	return executor(m, CategoryKey, func() *KeyCommands[K, V] { return &KeyCommands[K, V]{m: m} })
}

// HashCommands returns the executor for hash commands
func (m *Manager[K, V]) HashCommands() *HashCommands[K, V] {
	return executor(m, CategoryHash, func() *HashCommands[K, V] { return &HashCommands[K, V]{m: m} })
}

// SetCommands returns the executor for set commands
func (m *Manager[K, V]) SetCommands() *SetCommands[K, V] {
	return executor(m, CategorySet, func() *SetCommands[K, V] { return &SetCommands[K, V]{m: m} })
}

// ListCommands returns the executor for list commands
func (m *Manager[K, V]) ListCommands() *ListCommands[K, V] {
	return executor(m, CategoryList, func() *ListCommands[K, V] { return &ListCommands[K, V]{m: m} })
}

// SortedSetCommands returns the executor for sorted set commands
func (m *Manager[K, V]) SortedSetCommands() *SortedSetCommands[K, V] {
	return executor(m, CategorySortedSet, func() *SortedSetCommands[K, V] { return &SortedSetCommands[K, V]{m: m} })
}

// executor returns the cached executor of a category, creating it on first use
func executor[K any, V any, E any](m *Manager[K, V], category Category, create func() E) E {
	e, _ := m.executors.LoadOrCompute(category, func() any { return create() })
	return e.(E)
}

// run obtains a handle, runs fn on it and releases the handle again
func run[K any, V any, R any](ctx context.Context, m *Manager[K, V], fn func(c redis.Cmdable) (R, error)) (R, error) {
	h, err := m.GetCommandHandle(ctx)
	if err != nil {
		var zero R
		return zero, err
	}
	defer m.release(h)
	return fn(h.Commands())
}

// runErr is run for commands without a result
func runErr[K any, V any](ctx context.Context, m *Manager[K, V], fn func(c redis.Cmdable) error) error {
	_, err := run(ctx, m, func(c redis.Cmdable) (struct{}, error) {
		return struct{}{}, fn(c)
	})
	return err
}

// isNil reports whether err is the "no such key" reply
func isNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

// --------------------------------------------------------------------------
// Codec Helper
// --------------------------------------------------------------------------

func (m *Manager[K, V]) encodeKey(key K) (string, error) {
	s, err := m.codec.EncodeKey(key)
	if err != nil {
		return "", connector.WrapError(connector.RetCCodec, "failed to encode key", "", err)
	}
	return s, nil
}

func (m *Manager[K, V]) encodeKeys(keys []K) ([]string, error) {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		s, err := m.encodeKey(k)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *Manager[K, V]) decodeKey(raw string) (K, error) {
	k, err := m.codec.DecodeKey(raw)
	if err != nil {
		return k, connector.WrapError(connector.RetCCodec, "failed to decode key", raw, err)
	}
	return k, nil
}

func (m *Manager[K, V]) decodeKeys(raws []string) ([]K, error) {
	out := make([]K, 0, len(raws))
	for _, raw := range raws {
		k, err := m.decodeKey(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}

func (m *Manager[K, V]) encodeValue(value V) ([]byte, error) {
	b, err := m.codec.EncodeValue(value)
	if err != nil {
		return nil, connector.WrapError(connector.RetCCodec, "failed to encode value", "", err)
	}
	return b, nil
}

// encodeValues encodes values as command arguments
func (m *Manager[K, V]) encodeValues(values []V) ([]any, error) {
	out := make([]any, 0, len(values))
	for _, v := range values {
		b, err := m.encodeValue(v)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *Manager[K, V]) decodeValue(raw string) (V, error) {
	v, err := m.codec.DecodeValue([]byte(raw))
	if err != nil {
		return v, connector.WrapError(connector.RetCCodec, "failed to decode value", "", err)
	}
	return v, nil
}

func (m *Manager[K, V]) decodeValues(raws []string) ([]V, error) {
	out := make([]V, 0, len(raws))
	for _, raw := range raws {
		v, err := m.decodeValue(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// decodeOptional decodes the reply of a command that returns nil for a missing key
func (m *Manager[K, V]) decodeOptional(raw string, err error) (V, bool, error) {
	var zero V
	if isNil(err) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	v, err := m.decodeValue(raw)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// decodeSlots decodes replies like MGET and HMGET, where missing entries are nil
func (m *Manager[K, V]) decodeSlots(raws []any) ([]Value[V], error) {
	out := make([]Value[V], len(raws))
	for i, raw := range raws {
		s, ok := raw.(string)
		if !ok {
			continue
		}
		v, err := m.decodeValue(s)
		if err != nil {
			return nil, err
		}
		out[i] = Value[V]{Value: v, Found: true}
	}
	return out, nil
}
