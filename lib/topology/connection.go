package topology

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Kind is the topology of a Connection
type Kind int

const (
	KindStandalone Kind = iota
	KindCluster
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case KindStandalone:
		return "standalone"
	case KindCluster:
		return "cluster"
	default:
		return "unknown"
	}
}

// Connection is either a standalone or a cluster connection. The variant is fixed
// when the connection is created.
type Connection struct {
	kind       Kind
	standalone *redis.Client
	cluster    *redis.ClusterClient
}

// NewStandaloneConnection wraps a standalone client
func NewStandaloneConnection(client *redis.Client) *Connection {
	return &Connection{kind: KindStandalone, standalone: client}
}

// NewClusterConnection wraps a cluster client
func NewClusterConnection(client *redis.ClusterClient) *Connection {
	return &Connection{kind: KindCluster, cluster: client}
}

// Kind returns the topology of the connection
func (c *Connection) Kind() Kind {
	return c.kind
}

// Commands returns the command surface shared by both variants
func (c *Connection) Commands() redis.Cmdable {
	if c.kind == KindCluster {
		return c.cluster
	}
	return c.standalone
}

// Standalone returns the standalone client, ok is false for cluster connections
func (c *Connection) Standalone() (client *redis.Client, ok bool) {
	return c.standalone, c.kind == KindStandalone
}

// Cluster returns the cluster client, ok is false for standalone connections
func (c *Connection) Cluster() (client *redis.ClusterClient, ok bool) {
	return c.cluster, c.kind == KindCluster
}

// Ping sends a PING over the connection
func (c *Connection) Ping(ctx context.Context) error {
	return c.Commands().Ping(ctx).Err()
}

// Close closes the underlying client and all its physical connections
func (c *Connection) Close() error {
	if c.kind == KindCluster {
		return c.cluster.Close()
	}
	return c.standalone.Close()
}
