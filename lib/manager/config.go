package manager

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/kvconn/lib/pool"
)

// Config selects the topology and the pooling mode of a Manager
type Config struct {
	// Cluster selects the cluster topology, otherwise exactly one standalone server is used
	Cluster bool
	// Pooling borrows a connection per command instead of sharing one direct connection
	Pooling bool
	// Pool configures the connection pool, ignored if Pooling is false
	Pool pool.Config
}

// DefaultConfig returns a standalone, non pooled configuration with the default pool settings
func DefaultConfig() Config {
	return Config{
		Pool: pool.DefaultConfig(),
	}
}

// String returns a formatted string representation of the configuration
func (c Config) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString(fmt.Sprintf("%s:\n", title))
	}
	addField := func(name string, value any) {
		sb.WriteString(fmt.Sprintf("  %-22s: %v\n", name, value))
	}

	addSection("Connection Manager")
	addField("Cluster", c.Cluster)
	addField("Pooling", c.Pooling)
	if c.Pooling {
		addSection("Pool")
		sb.WriteString(c.Pool.String())
	}

	return sb.String()
}
