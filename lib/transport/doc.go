// Package transport translates the user facing connection options into the
// configuration of a single connection and from there into go-redis options.
//
// Key Components:
//
//   - Options: The options bag recognised by the connection manager (client name,
//     connect timeout, database index and the TLS flags). Integer options use the
//     sentinel Unset (-1) for "use the default". OptionsFromMap reads the same
//     options from a generic map, falling back to the defaults for absent or
//     unconvertible values.
//
//   - TransportConfig: The immutable per-node configuration produced by Build. Optional
//     settings are pointers, nil meaning "not set". Build never fails.
//
//   - RedisOptions / ClusterOptions: Conversion into go-redis client options. With TLS
//     enabled a custom dialer dials plain TCP and upgrades the connection, taking the
//     server name from the dialed address so every cluster node is verified against
//     its own name. StartTLS defers the handshake to the first write.
package transport
