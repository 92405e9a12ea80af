package pool

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ValentinKolb/kvconn/lib/connector"
	cpool "github.com/jolestar/go-commons-pool/v2"
	"github.com/lni/dragonboat/v4/logger"
)

// Logger is the logger of the pool package
var Logger = logger.GetLogger(connector.LoggerPool)

// Supplier creates a new connection. It is called whenever the pool needs a connection
// and has no idle one. The returned error is reported by Borrow as a connection acquisition error.
type Supplier[T io.Closer] func(ctx context.Context) (T, error)

// Validator reports whether an idle connection is still usable (see Config.TestOnBorrow)
type Validator[T io.Closer] func(ctx context.Context, conn T) bool

// ConnectionPool is a bounded pool of connections of type T.
// All methods are safe for concurrent use.
type ConnectionPool[T io.Closer] struct {
	name    string
	config  Config
	inner   *cpool.ObjectPool
	metrics *poolMetrics
}

// New creates a pool that obtains connections from supplier. No connection is created
// until the first Borrow. validator may be nil.
func New[T io.Closer](name string, supplier Supplier[T], validator Validator[T], config Config) *ConnectionPool[T] {
	p := &ConnectionPool[T]{
		name:   name,
		config: config,
	}
	p.metrics = newPoolMetrics(name, p.NumIdle, p.NumActive)

	f := &connectionFactory[T]{
		pool:      p,
		supplier:  supplier,
		validator: validator,
	}

	poolConfig := cpool.NewDefaultPoolConfig()
	poolConfig.MaxTotal = config.MaxTotal
	poolConfig.MaxIdle = config.MaxIdle
	poolConfig.MinIdle = config.MinIdle
	poolConfig.BlockWhenExhausted = config.BlockWhenExhausted
	poolConfig.TestOnBorrow = config.TestOnBorrow && validator != nil
	poolConfig.TimeBetweenEvictionRuns = config.TimeBetweenEvictionRuns
	poolConfig.MinEvictableIdleTime = config.MinEvictableIdleTime

	p.inner = cpool.NewObjectPool(context.Background(), f, poolConfig)

	Logger.Debugf("created pool %s (max total %d, max idle %d)", name, config.MaxTotal, config.MaxIdle)
	return p
}

// Name returns the name of the pool
func (p *ConnectionPool[T]) Name() string {
	return p.name
}

// Borrow returns an idle connection or creates a new one. If the pool is exhausted it
// waits (see Config.BlockWhenExhausted and Config.MaxWait) and fails with ErrPoolExhausted.
// A closed pool fails with ErrPoolClosed, a failing supplier with ErrConnectionAcquisition.
func (p *ConnectionPool[T]) Borrow(ctx context.Context) (T, error) {
	var zero T

	if p.inner.IsClosed() {
		p.metrics.borrowErrors.Inc()
		return zero, connector.WrapError(connector.RetCPoolClosed, "borrow from closed pool", p.name, nil)
	}

	if p.config.MaxWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.MaxWait)
		defer cancel()
	}

	obj, err := p.inner.BorrowObject(ctx)
	if err != nil {
		p.metrics.borrowErrors.Inc()
		return zero, p.borrowError(err)
	}

	conn, ok := obj.(T)
	if !ok {
		// cannot happen, the factory only creates T
		_ = p.inner.InvalidateObject(ctx, obj)
		p.metrics.borrowErrors.Inc()
		return zero, connector.WrapError(connector.RetCConnectionAcquisition, fmt.Sprintf("unexpected pooled object %T", obj), p.name, nil)
	}

	p.metrics.borrowed.Inc()
	return conn, nil
}

// Return gives a borrowed connection back to the pool. Connections returned to a closed
// pool, or in excess of MaxIdle, are closed. A connection that is not borrowed from this
// pool (already returned, or from another pool) is rejected with ErrInvalidHandle and left open.
func (p *ConnectionPool[T]) Return(ctx context.Context, conn T) error {
	if err := p.inner.ReturnObject(ctx, conn); err != nil {
		var illegalState *cpool.IllegalStateErr
		if errors.As(err, &illegalState) {
			return connector.WrapError(connector.RetCInvalidHandle, "connection is not borrowed from this pool", p.name, err)
		}
		Logger.Warningf("pool %s: failed to return connection, closing it: %v", p.name, err)
		if closeErr := conn.Close(); closeErr != nil {
			return errors.Join(err, closeErr)
		}
		return err
	}
	p.metrics.returned.Inc()
	return nil
}

// Invalidate removes a borrowed connection from the pool and closes it.
// Use it instead of Return for connections that are known to be broken.
func (p *ConnectionPool[T]) Invalidate(ctx context.Context, conn T) error {
	return p.inner.InvalidateObject(ctx, conn)
}

// Close closes all idle connections and rejects further borrows.
// Borrowed connections are closed when they are returned. Close is idempotent.
func (p *ConnectionPool[T]) Close(ctx context.Context) {
	if p.inner.IsClosed() {
		return
	}
	p.inner.Close(ctx)
	Logger.Infof("closed pool %s", p.name)
}

// IsClosed reports whether Close has been called
func (p *ConnectionPool[T]) IsClosed() bool {
	return p.inner.IsClosed()
}

// NumIdle returns the number of idle connections
func (p *ConnectionPool[T]) NumIdle() int {
	return p.inner.GetNumIdle()
}

// NumActive returns the number of borrowed connections
func (p *ConnectionPool[T]) NumActive() int {
	return p.inner.GetNumActive()
}

// Stats returns a snapshot of the pool counters
func (p *ConnectionPool[T]) Stats() Stats {
	return p.metrics.stats(p.name, p.NumIdle(), p.NumActive())
}

// WritePrometheus writes the pool metrics in Prometheus text format to w
func (p *ConnectionPool[T]) WritePrometheus(w io.Writer) {
	p.metrics.set.WritePrometheus(w)
}

// borrowError translates errors of the underlying object pool into connector errors
func (p *ConnectionPool[T]) borrowError(err error) error {
	if errors.Is(err, connector.ErrConnectionAcquisition) {
		return err
	}

	var illegalState *cpool.IllegalStateErr
	if p.inner.IsClosed() || errors.As(err, &illegalState) {
		return connector.WrapError(connector.RetCPoolClosed, "borrow from closed pool", p.name, err)
	}

	var noSuchElement *cpool.NoSuchElementErr
	if errors.As(err, &noSuchElement) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return connector.WrapError(connector.RetCPoolExhausted, "no connection available", p.name, err)
	}

	return connector.WrapError(connector.RetCConnectionAcquisition, "borrow failed", p.name, err)
}
