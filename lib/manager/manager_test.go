package manager

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ValentinKolb/kvconn/lib/codec"
	"github.com/ValentinKolb/kvconn/lib/connector"
	"github.com/ValentinKolb/kvconn/lib/topology"
	"github.com/ValentinKolb/kvconn/lib/transport"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestManager starts a miniredis server and returns an initialized manager for it
func newTestManager(t *testing.T, pooling bool) (*Manager[string, string], *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	m := NewManager(codec.NewStringCodec(), false, pooling)
	require.NoError(t, m.Init(s.Addr(), "", transport.DefaultOptions()))
	t.Cleanup(func() { _ = m.Close(context.Background()) })
	return m, s
}

func TestInitStandaloneRejectsMultipleHosts(t *testing.T) {
	s := miniredis.RunT(t)
	m := NewManager(codec.NewStringCodec(), false, false)

	err := m.Init("10.0.0.1:6379,10.0.0.2:6379", "", transport.DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, connector.ErrUnsupportedTopology))
	assert.False(t, m.IsInitialized())

	// a failed init can be retried
	require.NoError(t, m.Init(s.Addr(), "", transport.DefaultOptions()))
	assert.True(t, m.IsInitialized())
	require.NoError(t, m.Close(context.Background()))
}

func TestInitInvalidAddress(t *testing.T) {
	m := NewManager(codec.NewStringCodec(), true, false)
	err := m.Init("a:1,b:notanumber", "", transport.DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, connector.ErrInvalidAddress))
	assert.False(t, m.IsInitialized())
}

func TestInitTwice(t *testing.T) {
	m, s := newTestManager(t, false)
	err := m.Init(s.Addr(), "", transport.DefaultOptions())
	assert.True(t, errors.Is(err, connector.ErrAlreadyInitialized))
}

func TestNotInitialized(t *testing.T) {
	m := NewManager(codec.NewStringCodec(), false, true)
	ctx := context.Background()

	_, err := m.GetCommandHandle(ctx)
	assert.True(t, errors.Is(err, connector.ErrNotInitialized))

	_, _, err = m.StringCommands().Get(ctx, "k")
	assert.True(t, errors.Is(err, connector.ErrNotInitialized))

	assert.NoError(t, m.Release(nil))
	assert.NoError(t, m.Close(ctx))
	m.ClosePool(ctx)
	_, ok := m.PoolStats()
	assert.False(t, ok)
}

func TestDirectHandleIdentity(t *testing.T) {
	m, _ := newTestManager(t, false)
	ctx := context.Background()

	h1, err := m.GetCommandHandle(ctx)
	require.NoError(t, err)
	h2, err := m.GetCommandHandle(ctx)
	require.NoError(t, err)

	assert.Same(t, h1, h2)
	assert.False(t, h1.Pooled())
	assert.Equal(t, topology.KindStandalone, h1.Kind())

	// release is a no-op without pooling
	assert.NoError(t, m.Release(h1))
	assert.NoError(t, m.Release(h1))
	h3, err := m.GetCommandHandle(ctx)
	require.NoError(t, err)
	assert.Same(t, h1, h3)
	assert.NoError(t, h3.Commands().Ping(ctx).Err())
}

func TestStandaloneSetGet(t *testing.T) {
	for _, pooling := range []bool{false, true} {
		m, s := newTestManager(t, pooling)
		ctx := context.Background()
		sc := m.StringCommands()

		require.NoError(t, sc.Set(ctx, "k", "v"))
		v, found, err := sc.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "v", v)
		s.CheckGet(t, "k", "v")

		_, found, err = sc.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
	}
}

func TestPooledReleaseRestoresIdle(t *testing.T) {
	m, _ := newTestManager(t, true)
	ctx := context.Background()

	h, err := m.GetCommandHandle(ctx)
	require.NoError(t, err)
	assert.True(t, h.Pooled())
	_, ok := h.Standalone()
	assert.True(t, ok)

	stats, ok := m.PoolStats()
	require.True(t, ok)
	assert.Equal(t, 0, stats.Idle)
	assert.Equal(t, 1, stats.Active)

	require.NoError(t, m.Release(h))
	stats, _ = m.PoolStats()
	assert.Equal(t, 1, stats.Idle)
	assert.Equal(t, 0, stats.Active)

	// the idle connection is reused
	h2, err := m.GetCommandHandle(ctx)
	require.NoError(t, err)
	assert.NotSame(t, h, h2)
	assert.Same(t, h.conn, h2.conn)
	require.NoError(t, m.Release(h2))
}

func TestDoubleRelease(t *testing.T) {
	m, _ := newTestManager(t, true)
	ctx := context.Background()

	h, err := m.GetCommandHandle(ctx)
	require.NoError(t, err)
	require.NoError(t, m.Release(h))
	require.NoError(t, m.Release(h))

	stats, _ := m.PoolStats()
	assert.Equal(t, 1, stats.Idle)
	assert.Equal(t, 0, stats.Active)
	assert.Equal(t, uint64(1), stats.Returned)
}

func TestReleaseInvalidHandle(t *testing.T) {
	m, _ := newTestManager(t, true)

	clusterHandle := &Handle{
		conn: topology.NewClusterConnection(redis.NewClusterClient(&redis.ClusterOptions{Addrs: []string{"10.0.0.1:6379"}})),
	}
	defer clusterHandle.conn.Close()
	err := m.Release(clusterHandle)
	assert.True(t, errors.Is(err, connector.ErrInvalidHandle))

	directHandle := &Handle{conn: topology.NewStandaloneConnection(redis.NewClient(&redis.Options{Addr: "10.0.0.1:6379"}))}
	defer directHandle.conn.Close()
	err = m.Release(directHandle)
	assert.True(t, errors.Is(err, connector.ErrInvalidHandle))

	stats, _ := m.PoolStats()
	assert.Equal(t, uint64(0), stats.Returned)
}

func TestReleaseForeignHandle(t *testing.T) {
	a, s := newTestManager(t, true)
	b := NewManager(codec.NewStringCodec(), false, true)
	require.NoError(t, b.Init(s.Addr(), "", transport.DefaultOptions()))
	defer b.Close(context.Background())
	ctx := context.Background()

	h, err := a.GetCommandHandle(ctx)
	require.NoError(t, err)

	// b rejects the handle of a and leaves the connection alone
	err = b.Release(h)
	require.Error(t, err)
	assert.True(t, errors.Is(err, connector.ErrInvalidHandle))
	require.NoError(t, h.Commands().Ping(ctx).Err())

	// a can still take it back
	require.NoError(t, a.Release(h))
	stats, ok := a.PoolStats()
	require.True(t, ok)
	assert.Equal(t, 0, stats.Active)
	assert.Equal(t, 1, stats.Idle)
	assert.Equal(t, uint64(0), stats.Destroyed)
}

func TestClusterInitWithTwoSeeds(t *testing.T) {
	for _, pooling := range []bool{false, true} {
		m := NewManager(codec.NewStringCodec(), true, pooling)
		require.NoError(t, m.Init("10.0.0.1:6379,10.0.0.2:6379", "", transport.DefaultOptions()))
		assert.True(t, m.IsClusterConnection())
		assert.Equal(t, pooling, m.IsPoolingEnabled())

		if !pooling {
			h, err := m.GetCommandHandle(context.Background())
			require.NoError(t, err)
			client, ok := h.Cluster()
			require.True(t, ok)
			assert.Equal(t, []string{"10.0.0.1:6379", "10.0.0.2:6379"}, client.Options().Addrs)
			_, ok = h.Standalone()
			assert.False(t, ok)
		}
		require.NoError(t, m.Close(context.Background()))
	}
}

func TestClusterSetGet(t *testing.T) {
	for _, pooling := range []bool{false, true} {
		s := miniredis.RunT(t)
		m := NewManager(codec.NewStringCodec(), true, pooling)
		require.NoError(t, m.Init(s.Addr(), "", transport.DefaultOptions()))
		ctx := context.Background()

		require.NoError(t, m.StringCommands().Set(ctx, "k", "v"))
		v, found, err := m.StringCommands().Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "v", v)

		if pooling {
			stats, ok := m.PoolStats()
			require.True(t, ok)
			assert.Equal(t, 0, stats.Active)
			assert.Equal(t, uint64(2), stats.Returned)
		}
		require.NoError(t, m.Close(ctx))
	}
}

func TestPoolExhausted(t *testing.T) {
	s := miniredis.RunT(t)
	cfg := DefaultConfig()
	cfg.Pooling = true
	cfg.Pool.MaxTotal = 1
	cfg.Pool.BlockWhenExhausted = false
	m := NewManagerWithConfig(codec.NewStringCodec(), cfg)
	require.NoError(t, m.Init(s.Addr(), "", transport.DefaultOptions()))
	defer m.Close(context.Background())
	ctx := context.Background()

	h, err := m.GetCommandHandle(ctx)
	require.NoError(t, err)

	_, err = m.GetCommandHandle(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, connector.ErrConnectionAcquisition))
	assert.True(t, errors.Is(err, connector.ErrPoolExhausted))

	require.NoError(t, m.Release(h))
	h, err = m.GetCommandHandle(ctx)
	require.NoError(t, err)
	require.NoError(t, m.Release(h))
}

func TestClosePool(t *testing.T) {
	m, _ := newTestManager(t, true)
	ctx := context.Background()

	borrowed, err := m.GetCommandHandle(ctx)
	require.NoError(t, err)

	m.ClosePool(ctx)
	m.ClosePool(ctx)

	_, err = m.GetCommandHandle(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, connector.ErrPoolClosed))
	assert.False(t, errors.Is(err, connector.ErrConnectionAcquisition))

	// releasing into the closed pool destroys the connection
	require.NoError(t, m.Release(borrowed))
	stats, ok := m.PoolStats()
	require.True(t, ok)
	assert.Equal(t, 0, stats.Active)
	assert.Equal(t, 0, stats.Idle)
	assert.Equal(t, uint64(1), stats.Destroyed)
}

func TestConnectFailureAtBorrow(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	opts := transport.DefaultOptions()
	opts.ConnectionTimeoutMs = 200
	m := NewManager(codec.NewStringCodec(), false, true)
	require.NoError(t, m.Init(addr, "", opts))
	defer m.Close(context.Background())

	_, err := m.GetCommandHandle(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, connector.ErrConnectionAcquisition))
}

func TestExecutorsAreCached(t *testing.T) {
	m := NewManager(codec.NewStringCodec(), false, false)

	var wg sync.WaitGroup
	results := make([]*StringCommands[string, string], 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = m.StringCommands()
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Same(t, results[0], r)
	}

	assert.Same(t, m.ConnectionCommands(), m.ConnectionCommands())
	assert.Same(t, m.KeyCommands(), m.KeyCommands())
	assert.Same(t, m.HashCommands(), m.HashCommands())
	assert.Same(t, m.SetCommands(), m.SetCommands())
	assert.Same(t, m.ListCommands(), m.ListCommands())
	assert.Same(t, m.SortedSetCommands(), m.SortedSetCommands())
}

func TestConcurrentPooledCommands(t *testing.T) {
	s := miniredis.RunT(t)
	cfg := DefaultConfig()
	cfg.Pooling = true
	cfg.Pool.MaxTotal = 4
	m := NewManagerWithConfig(codec.NewStringCodec(), cfg)
	require.NoError(t, m.Init(s.Addr(), "", transport.DefaultOptions()))
	defer m.Close(context.Background())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := m.StringCommands().Incr(ctx, "counter")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	s.CheckGet(t, "counter", "400")
	stats, _ := m.PoolStats()
	assert.Equal(t, 0, stats.Active)
	assert.LessOrEqual(t, stats.Created, uint64(4))
}

func TestWritePoolMetrics(t *testing.T) {
	m, _ := newTestManager(t, true)
	_, err := m.ConnectionCommands().Ping(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	m.WritePoolMetrics(&buf)
	assert.Contains(t, buf.String(), "kvconn_pool_borrowed_total")

	direct, _ := newTestManager(t, false)
	buf.Reset()
	direct.WritePoolMetrics(&buf)
	assert.Empty(t, buf.String())
}

func TestConfigString(t *testing.T) {
	cfg := DefaultConfig()
	assert.Contains(t, cfg.String(), "Cluster")
	assert.NotContains(t, cfg.String(), "Max Total")

	cfg.Pooling = true
	assert.Contains(t, cfg.String(), "Max Total")
}
