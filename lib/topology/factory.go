package topology

import (
	"context"

	"github.com/ValentinKolb/kvconn/lib/address"
	"github.com/ValentinKolb/kvconn/lib/connector"
	"github.com/ValentinKolb/kvconn/lib/transport"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/redis/go-redis/v9"
)

// Logger is the logger of the topology package
var Logger = logger.GetLogger(connector.LoggerTopology)

// pooledPoolSize caps a pooled connection to one physical connection per node,
// the connection pool decides how many of them exist
const pooledPoolSize = 1

// Supplier opens a new connection, see pool.Supplier
type Supplier func(ctx context.Context) (*Connection, error)

// HandleSource is the result of the factory. Exactly one of the fields is set:
// Direct for the non pooled mode, Supplier for the pooled mode.
type HandleSource struct {
	Direct   *Connection
	Supplier Supplier
}

// Factory builds connections for either topology
type Factory struct {
	// Pooling selects the Supplier variant of HandleSource
	Pooling bool
}

// CreateStandalone creates the handle source for a single server. The direct connection
// does not connect before its first command.
func (f Factory) CreateStandalone(addr address.ServerAddress, password string, opts transport.Options) HandleSource {
	cfg := transport.Build(addr.Host, addr.Port, password, opts)

	if !f.Pooling {
		Logger.Infof("using direct standalone connection to %s", cfg.Addr())
		return HandleSource{Direct: NewStandaloneConnection(redis.NewClient(cfg.RedisOptions()))}
	}

	Logger.Infof("using pooled standalone connections to %s", cfg.Addr())
	return HandleSource{Supplier: func(ctx context.Context) (*Connection, error) {
		redisOpts := cfg.RedisOptions()
		redisOpts.PoolSize = pooledPoolSize
		return connect(ctx, NewStandaloneConnection(redis.NewClient(redisOpts)))
	}}
}

// CreateCluster creates the handle source for a cluster. Every address is a seed node,
// the client discovers the remaining nodes on its own.
func (f Factory) CreateCluster(addrs []address.ServerAddress, password string, opts transport.Options) HandleSource {
	configs := make([]transport.TransportConfig, 0, len(addrs))
	for _, addr := range addrs {
		configs = append(configs, transport.Build(addr.Host, addr.Port, password, opts))
	}

	if !f.Pooling {
		Logger.Infof("using direct cluster connection (%d seed nodes)", len(configs))
		return HandleSource{Direct: NewClusterConnection(redis.NewClusterClient(transport.ClusterOptions(configs)))}
	}

	Logger.Infof("using pooled cluster connections (%d seed nodes)", len(configs))
	return HandleSource{Supplier: func(ctx context.Context) (*Connection, error) {
		clusterOpts := transport.ClusterOptions(configs)
		clusterOpts.PoolSize = pooledPoolSize
		return connect(ctx, NewClusterConnection(redis.NewClusterClient(clusterOpts)))
	}}
}

// connect pings a fresh connection so connect and auth failures surface when it is created
func connect(ctx context.Context, conn *Connection) (*Connection, error) {
	if err := conn.Ping(ctx); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			Logger.Warningf("failed to close %s connection after failed ping: %v", conn.Kind(), closeErr)
		}
		return nil, err
	}
	return conn, nil
}
