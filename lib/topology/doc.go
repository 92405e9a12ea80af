// Package topology builds connections to a standalone server or a cluster.
//
// A Connection is a tagged variant holding either a *redis.Client or a *redis.ClusterClient.
// Commands() exposes the command surface both have in common, Standalone() and Cluster()
// give access to the topology specific client.
//
// Factory returns a HandleSource: in direct mode one shared, lazily connecting Connection;
// in pooled mode a Supplier that opens and pings a new Connection limited to one physical
// connection per node, meant to be handed to a pool.ConnectionPool.
package topology
