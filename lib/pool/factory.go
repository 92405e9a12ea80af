package pool

import (
	"context"
	"fmt"
	"io"

	"github.com/ValentinKolb/kvconn/lib/connector"
	cpool "github.com/jolestar/go-commons-pool/v2"
)

// connectionFactory adapts a Supplier to the object factory of the underlying pool
type connectionFactory[T io.Closer] struct {
	pool      *ConnectionPool[T]
	supplier  Supplier[T]
	validator Validator[T]
}

// --------------------------------------------------------------------------
// Interface Methods (docu see pool.PooledObjectFactory)
// --------------------------------------------------------------------------

func (f *connectionFactory[T]) MakeObject(ctx context.Context) (*cpool.PooledObject, error) {
	conn, err := f.supplier(ctx)
	if err != nil {
		Logger.Warningf("pool %s: failed to create connection: %v", f.pool.name, err)
		return nil, connector.WrapError(connector.RetCConnectionAcquisition, "failed to create connection", f.pool.name, err)
	}
	f.pool.metrics.created.Inc()
	Logger.Debugf("pool %s: created connection", f.pool.name)
	return cpool.NewPooledObject(conn), nil
}

func (f *connectionFactory[T]) DestroyObject(ctx context.Context, object *cpool.PooledObject) error {
	conn, ok := object.Object.(T)
	if !ok {
		return fmt.Errorf("pool %s: unexpected pooled object %T", f.pool.name, object.Object)
	}
	f.pool.metrics.destroyed.Inc()
	Logger.Debugf("pool %s: destroying connection", f.pool.name)
	return conn.Close()
}

func (f *connectionFactory[T]) ValidateObject(ctx context.Context, object *cpool.PooledObject) bool {
	if f.validator == nil {
		return true
	}
	conn, ok := object.Object.(T)
	return ok && f.validator(ctx, conn)
}

func (f *connectionFactory[T]) ActivateObject(ctx context.Context, object *cpool.PooledObject) error {
	return nil
}

func (f *connectionFactory[T]) PassivateObject(ctx context.Context, object *cpool.PooledObject) error {
	return nil
}
