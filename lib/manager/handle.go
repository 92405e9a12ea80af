package manager

import (
	"sync/atomic"

	"github.com/ValentinKolb/kvconn/lib/pool"
	"github.com/ValentinKolb/kvconn/lib/topology"
	"github.com/redis/go-redis/v9"
)

// Handle is a command handle returned by Manager.GetCommandHandle.
// A pooled handle must be given back with Manager.Release and not be used afterwards.
type Handle struct {
	conn *topology.Connection
	// owner is the pool the connection was borrowed from, nil for the direct handle
	owner    *pool.ConnectionPool[*topology.Connection]
	released atomic.Bool
}

// Commands returns the commands available on both topologies
func (h *Handle) Commands() redis.Cmdable {
	return h.conn.Commands()
}

// Kind returns the topology of the underlying connection
func (h *Handle) Kind() topology.Kind {
	return h.conn.Kind()
}

// Standalone returns the standalone client, ok is false on a cluster connection
func (h *Handle) Standalone() (*redis.Client, bool) {
	return h.conn.Standalone()
}

// Cluster returns the cluster client, ok is false on a standalone connection
func (h *Handle) Cluster() (*redis.ClusterClient, bool) {
	return h.conn.Cluster()
}

// Pooled reports whether the handle was borrowed from a pool
func (h *Handle) Pooled() bool {
	return h.owner != nil
}
