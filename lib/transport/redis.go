package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultDialTimeout matches the go-redis default and is used by the TLS dialers
// when no connection timeout is configured
const defaultDialTimeout = 5 * time.Second

// DialContextFunc dials a connection to a node
type DialContextFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// TLSConfig returns the TLS client configuration or nil if TLS is disabled.
// The server name is filled in per node by the dialer.
func (c TransportConfig) TLSConfig() *tls.Config {
	if !c.TLSEnabled {
		return nil
	}
	return &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: !c.VerifyPeerEnabled,
	}
}

// Dialer returns the dialer for this configuration or nil to use the go-redis default
func (c TransportConfig) Dialer() DialContextFunc {
	tlsConfig := c.TLSConfig()
	if tlsConfig == nil {
		return nil
	}
	return tlsDialer(tlsConfig, c.dialTimeout(), !c.StartTLSEnabled)
}

// RedisOptions converts the configuration into go-redis options for a standalone client
func (c TransportConfig) RedisOptions() *redis.Options {
	opts := &redis.Options{
		Addr: c.Addr(),
	}
	if c.Database != nil {
		opts.DB = *c.Database
	}
	if c.ConnectionTimeout != nil {
		opts.DialTimeout = *c.ConnectionTimeout
	}
	if c.ClientName != nil {
		opts.ClientName = *c.ClientName
	}
	if c.Password != nil {
		opts.Password = *c.Password
	}
	if dialer := c.Dialer(); dialer != nil {
		opts.Dialer = dialer
	}
	return opts
}

// ClusterOptions converts one configuration per seed node into go-redis cluster options.
// Password and options are the same for every node, so the first configuration supplies them.
// Cluster mode has a single database, the database index is ignored.
func ClusterOptions(configs []TransportConfig) *redis.ClusterOptions {
	opts := &redis.ClusterOptions{
		Addrs: make([]string, 0, len(configs)),
	}
	for _, c := range configs {
		opts.Addrs = append(opts.Addrs, c.Addr())
	}
	if len(configs) == 0 {
		return opts
	}

	first := configs[0]
	if first.ConnectionTimeout != nil {
		opts.DialTimeout = *first.ConnectionTimeout
	}
	if first.ClientName != nil {
		opts.ClientName = *first.ClientName
	}
	if first.Password != nil {
		opts.Password = *first.Password
	}
	if dialer := first.Dialer(); dialer != nil {
		opts.Dialer = dialer
	}
	return opts
}

// dialTimeout returns the configured connect timeout or the default
func (c TransportConfig) dialTimeout() time.Duration {
	if c.ConnectionTimeout != nil && *c.ConnectionTimeout > 0 {
		return *c.ConnectionTimeout
	}
	return defaultDialTimeout
}

// tlsDialer returns a DialContextFunc that dials a plain connection and upgrades it to TLS.
// The server name is taken from the dialed address so every cluster node is verified
// against its own host name. With handshake=false the handshake runs on the first write.
func tlsDialer(config *tls.Config, timeout time.Duration, handshake bool) DialContextFunc {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		dialer := &net.Dialer{Timeout: timeout, KeepAlive: 5 * time.Minute}
		rawConn, err := dialer.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}

		nodeConfig := config.Clone()
		if host, _, err := net.SplitHostPort(addr); err == nil {
			nodeConfig.ServerName = host
		}

		tlsConn := tls.Client(rawConn, nodeConfig)
		if !handshake {
			return tlsConn, nil
		}

		if err := tlsConn.HandshakeContext(ctx); err != nil {
			if closeErr := rawConn.Close(); closeErr != nil {
				return nil, fmt.Errorf("failed to close connection after TLS handshake error: %w", closeErr)
			}
			return nil, err
		}
		return tlsConn, nil
	}
}
