// Package cmd implements the command-line interface for kvconn. Every command
// group opens its own connection manager from the shared connection flags
// (hosts, cluster, pool, TLS ...) and closes it when the command returns.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for key-value operations (get, set, delete, perf, etc.)
//   - hash: Commands for hash operations (hset, hget, hgetall, hdel)
//   - lock: Commands for locking operations (acquire, release)
//   - ping: Connectivity checks (ping, echo)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See kvconn -help for a list of all commands.
package cmd
