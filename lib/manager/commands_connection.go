package manager

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ConnectionCommands runs connection related commands
type ConnectionCommands[K any, V any] struct {
	m *Manager[K, V]
}

// Ping sends PING and returns the reply (PONG)
func (e *ConnectionCommands[K, V]) Ping(ctx context.Context) (string, error) {
	return run(ctx, e.m, func(c redis.Cmdable) (string, error) {
		return c.Ping(ctx).Result()
	})
}

// Echo returns message as echoed by the server
func (e *ConnectionCommands[K, V]) Echo(ctx context.Context, message string) (string, error) {
	return run(ctx, e.m, func(c redis.Cmdable) (string, error) {
		return c.Echo(ctx, message).Result()
	})
}

// ClientGetName returns the name of the connection, ok is false if no name is set
func (e *ConnectionCommands[K, V]) ClientGetName(ctx context.Context) (name string, ok bool, err error) {
	name, err = run(ctx, e.m, func(c redis.Cmdable) (string, error) {
		return c.ClientGetName(ctx).Result()
	})
	if isNil(err) {
		return "", false, nil
	}
	return name, err == nil && name != "", err
}

// DBSize returns the number of keys in the selected database
func (e *ConnectionCommands[K, V]) DBSize(ctx context.Context) (int64, error) {
	return run(ctx, e.m, func(c redis.Cmdable) (int64, error) {
		return c.DBSize(ctx).Result()
	})
}
