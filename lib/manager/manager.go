package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/ValentinKolb/kvconn/lib/address"
	"github.com/ValentinKolb/kvconn/lib/codec"
	"github.com/ValentinKolb/kvconn/lib/connector"
	"github.com/ValentinKolb/kvconn/lib/pool"
	"github.com/ValentinKolb/kvconn/lib/topology"
	"github.com/ValentinKolb/kvconn/lib/transport"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

// Logger is the logger of the manager package
var Logger = logger.GetLogger(connector.LoggerManager)

// connState is the state created by a successful Init. It is never modified afterwards.
// Exactly one of direct and pool is set.
type connState struct {
	direct *Handle
	pool   *pool.ConnectionPool[*topology.Connection]
}

// Manager owns the connections to a standalone server or a cluster and hands out
// command handles and typed command executors. Keys and values are converted with the
// codec given at construction.
//
// A Manager must be initialized with Init before use. All methods are safe for concurrent use.
type Manager[K any, V any] struct {
	config Config
	codec  codec.Codec[K, V]

	initMu sync.Mutex
	state  atomic.Pointer[connState]

	executors *xsync.MapOf[Category, any]
}

// NewManager creates a manager with the default pool configuration
func NewManager[K any, V any](c codec.Codec[K, V], cluster, pooling bool) *Manager[K, V] {
	config := DefaultConfig()
	config.Cluster = cluster
	config.Pooling = pooling
	return NewManagerWithConfig(c, config)
}

// NewManagerWithConfig creates a manager with the given configuration
func NewManagerWithConfig[K any, V any](c codec.Codec[K, V], config Config) *Manager[K, V] {
	return &Manager[K, V]{
		config:    config,
		codec:     c,
		executors: xsync.NewMapOf[Category, any](),
	}
}

// --------------------------------------------------------------------------
// Lifecycle
// --------------------------------------------------------------------------

// Init resolves hosts (host[:port](,host[:port])*) and sets up either the direct connection
// or the connection pool. No connection is opened here: the direct connection connects on
// its first command, pooled connections are opened by the first borrows.
//
// A standalone manager accepts exactly one address. A failed Init leaves the manager
// uninitialized and may be retried, a second Init after a successful one fails with
// connector.ErrAlreadyInitialized.
func (m *Manager[K, V]) Init(hosts, password string, opts transport.Options) error {
	m.initMu.Lock()
	defer m.initMu.Unlock()

	if m.state.Load() != nil {
		return connector.WrapError(connector.RetCAlreadyInitialized, "init called twice", hosts, nil)
	}

	addrs, err := address.Resolve(hosts)
	if err != nil {
		Logger.Errorf("init failed: %v", err)
		return err
	}

	if !m.config.Cluster && len(addrs) != 1 {
		err := connector.WrapError(connector.RetCUnsupportedTopology,
			fmt.Sprintf("standalone mode needs exactly one address, got %d", len(addrs)), hosts, nil)
		Logger.Errorf("init failed: %v", err)
		return err
	}

	factory := topology.Factory{Pooling: m.config.Pooling}
	var src topology.HandleSource
	if m.config.Cluster {
		src = factory.CreateCluster(addrs, password, opts)
	} else {
		src = factory.CreateStandalone(addrs[0], password, opts)
	}

	st := &connState{}
	if m.config.Pooling {
		name := fmt.Sprintf("%s:%s", m.kind(), hosts)
		st.pool = pool.New(name, pool.Supplier[*topology.Connection](src.Supplier), validate, m.config.Pool)
	} else {
		st.direct = &Handle{conn: src.Direct}
	}
	m.state.Store(st)

	Logger.Infof("initialized %s connection manager for %s (pooling: %t)", m.kind(), hosts, m.config.Pooling)
	return nil
}

// ClosePool closes the connection pool if pooling is enabled. Borrowed connections are
// closed when they are released. Calling it again, or without pooling, has no effect.
func (m *Manager[K, V]) ClosePool(ctx context.Context) {
	if st := m.state.Load(); st != nil && st.pool != nil {
		st.pool.Close(ctx)
	}
}

// Close closes the connection pool and the direct connection
func (m *Manager[K, V]) Close(ctx context.Context) error {
	st := m.state.Load()
	if st == nil {
		return nil
	}
	if st.pool != nil {
		st.pool.Close(ctx)
	}
	if st.direct != nil && st.direct.released.CompareAndSwap(false, true) {
		return st.direct.conn.Close()
	}
	return nil
}

// --------------------------------------------------------------------------
// Command Handles
// --------------------------------------------------------------------------

// GetCommandHandle returns a handle to run commands on. Without pooling every call returns
// the same shared handle. With pooling a connection is borrowed and must be given back with
// Release. A failed borrow is reported as connector.ErrConnectionAcquisition (with
// connector.ErrPoolExhausted as cause if the pool is exhausted), a closed pool as
// connector.ErrPoolClosed.
func (m *Manager[K, V]) GetCommandHandle(ctx context.Context) (*Handle, error) {
	st, err := m.loadState()
	if err != nil {
		return nil, err
	}

	if st.pool == nil {
		return st.direct, nil
	}

	conn, err := st.pool.Borrow(ctx)
	if err != nil {
		Logger.Warningf("failed to borrow connection: %v", err)
		if errors.Is(err, connector.ErrPoolClosed) || errors.Is(err, connector.ErrConnectionAcquisition) {
			return nil, err
		}
		return nil, connector.WrapError(connector.RetCConnectionAcquisition, "failed to borrow connection", st.pool.Name(), err)
	}
	return &Handle{conn: conn, owner: st.pool}, nil
}

// Release gives a handle obtained from GetCommandHandle back. Without pooling, for a nil
// handle and for a handle that was already released it does nothing. A handle of the other
// topology, or one borrowed from another manager, is rejected with connector.ErrInvalidHandle.
func (m *Manager[K, V]) Release(h *Handle) error {
	if h == nil {
		return nil
	}
	st := m.state.Load()
	if st == nil || st.pool == nil {
		return nil
	}

	if h.conn.Kind() != m.kind() {
		return connector.WrapError(connector.RetCInvalidHandle,
			fmt.Sprintf("expected a pooled %s handle, got a %s handle", m.kind(), h.conn.Kind()), st.pool.Name(), nil)
	}
	if h.owner != st.pool {
		return connector.WrapError(connector.RetCInvalidHandle, "handle was not borrowed from this manager", st.pool.Name(), nil)
	}

	if !h.released.CompareAndSwap(false, true) {
		return nil
	}
	return st.pool.Return(context.Background(), h.conn)
}

// --------------------------------------------------------------------------
// Accessors
// --------------------------------------------------------------------------

// IsClusterConnection reports whether the manager was created for a cluster
func (m *Manager[K, V]) IsClusterConnection() bool {
	return m.config.Cluster
}

// IsPoolingEnabled reports whether commands run on pooled connections
func (m *Manager[K, V]) IsPoolingEnabled() bool {
	return m.config.Pooling
}

// IsInitialized reports whether Init succeeded
func (m *Manager[K, V]) IsInitialized() bool {
	return m.state.Load() != nil
}

// Config returns the configuration of the manager
func (m *Manager[K, V]) Config() Config {
	return m.config
}

// PoolStats returns the counters of the connection pool, ok is false without a pool
func (m *Manager[K, V]) PoolStats() (stats pool.Stats, ok bool) {
	st := m.state.Load()
	if st == nil || st.pool == nil {
		return pool.Stats{}, false
	}
	return st.pool.Stats(), true
}

// WritePoolMetrics writes the pool metrics in Prometheus text format, nothing without a pool
func (m *Manager[K, V]) WritePoolMetrics(w io.Writer) {
	if st := m.state.Load(); st != nil && st.pool != nil {
		st.pool.WritePrometheus(w)
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func (m *Manager[K, V]) loadState() (*connState, error) {
	st := m.state.Load()
	if st == nil {
		return nil, connector.ErrNotInitialized
	}
	return st, nil
}

func (m *Manager[K, V]) kind() topology.Kind {
	if m.config.Cluster {
		return topology.KindCluster
	}
	return topology.KindStandalone
}

// release is Release for the executors, failures are only logged
func (m *Manager[K, V]) release(h *Handle) {
	if err := m.Release(h); err != nil {
		Logger.Warningf("failed to release connection: %v", err)
	}
}

// validate is the validator of pooled connections
func validate(ctx context.Context, conn *topology.Connection) bool {
	return conn.Ping(ctx) == nil
}
