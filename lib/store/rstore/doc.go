// Package rstore implements the store.IStore interface on top of a Redis server or
// cluster reached through a manager.Manager. Keys are strings and values raw bytes
// (see codec.NewBytesCodec).
//
// Implementation Details:
//
//   - Expiration: Expiration times are given in seconds and map to the native TTL of
//     the key. SetE and SetEIfUnset with an expiration of 0 store the key without TTL,
//     Expire with 0 deletes the key at once.
//
//   - Compare and delete: DeleteIfEqual runs a small Lua script, so the comparison and
//     the delete happen atomically on the server. The lock manager relies on this to
//     release only locks it owns.
//
//   - Connections: Every operation runs on a handle of the manager, in pooling mode a
//     connection is borrowed for the duration of a single operation.
package rstore
