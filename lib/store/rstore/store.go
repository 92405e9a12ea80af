package rstore

import (
	"context"
	"time"

	"github.com/ValentinKolb/kvconn/lib/manager"
	"github.com/ValentinKolb/kvconn/lib/store"
	"github.com/redis/go-redis/v9"
)

// deleteIfEqual deletes KEYS[1] if it holds ARGV[1]
var deleteIfEqual = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type storeImpl struct {
	m *manager.Manager[string, []byte]
}

// NewRedisStore creates a store on top of an initialized connection manager
func NewRedisStore(m *manager.Manager[string, []byte]) store.IStore {
	return &storeImpl{m: m}
}

func seconds(n uint64) time.Duration {
	return time.Duration(n) * time.Second
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store/interface.go)
// --------------------------------------------------------------------------

func (s *storeImpl) Set(ctx context.Context, key string, value []byte) error {
	return s.m.StringCommands().Set(ctx, key, value)
}

func (s *storeImpl) SetE(ctx context.Context, key string, value []byte, expireIn uint64) error {
	return s.m.StringCommands().SetEx(ctx, key, value, seconds(expireIn))
}

func (s *storeImpl) SetEIfUnset(ctx context.Context, key string, value []byte, expireIn uint64) (bool, error) {
	return s.m.StringCommands().SetNX(ctx, key, value, seconds(expireIn))
}

func (s *storeImpl) Expire(ctx context.Context, key string, expireIn uint64) (bool, error) {
	if expireIn == 0 {
		n, err := s.m.KeyCommands().Del(ctx, key)
		return n > 0, err
	}
	return s.m.KeyCommands().Expire(ctx, key, seconds(expireIn))
}

func (s *storeImpl) Delete(ctx context.Context, key string) error {
	_, err := s.m.KeyCommands().Del(ctx, key)
	return err
}

func (s *storeImpl) DeleteIfEqual(ctx context.Context, key string, expected []byte) (bool, error) {
	h, err := s.m.GetCommandHandle(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = s.m.Release(h)
	}()

	n, err := deleteIfEqual.Run(ctx, h.Commands(), []string{key}, expected).Int64()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *storeImpl) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.m.StringCommands().Get(ctx, key)
}

func (s *storeImpl) Has(ctx context.Context, key string) (bool, error) {
	n, err := s.m.KeyCommands().Exists(ctx, key)
	return n > 0, err
}

func (s *storeImpl) GetDBInfo(ctx context.Context) (store.DatabaseInfo, error) {
	keys, err := s.m.ConnectionCommands().DBSize(ctx)
	if err != nil {
		return store.DatabaseInfo{}, err
	}
	topology := "standalone"
	if s.m.IsClusterConnection() {
		topology = "cluster"
	}
	return store.DatabaseInfo{
		Keys:     keys,
		Topology: topology,
		Pooled:   s.m.IsPoolingEnabled(),
	}, nil
}
