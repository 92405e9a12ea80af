// Package manager provides the connection manager: one uniform way to run commands against
// a standalone server or a cluster, with or without connection pooling.
//
// Lifecycle:
//
//	A Manager is created with a codec and fixed topology and pooling flags (NewManager or
//	NewManagerWithConfig) and initialized exactly once with Init. Init resolves the host list,
//	builds the transport configuration of every node and either creates the shared direct
//	connection or the connection pool. No network IO happens during Init. Close (or
//	ClosePool for the pool only) releases the resources again.
//
// Command Handles:
//
//	GetCommandHandle returns a *Handle. Without pooling it is always the same handle backed
//	by one goroutine safe client. With pooling a connection is borrowed for every call and the
//	handle must be given back with Release. Releasing a handle twice does nothing, releasing a
//	handle of the other topology fails with connector.ErrInvalidHandle.
//
// Executors:
//
//	ConnectionCommands, StringCommands, KeyCommands, HashCommands, SetCommands, ListCommands
//	and SortedSetCommands return typed executors that are created on first use and cached for
//	the lifetime of the manager. Every executor method borrows a handle, runs exactly one
//	command and releases the handle, so executors are safe to use from many goroutines.
//	Keys and values are converted with the codec of the manager, missing keys are reported
//	with a found=false result instead of an error.
//
// Errors:
//
//	All errors created by the manager are *connector.Error values and can be matched with
//	errors.Is against the connector.Err* sentinels. Errors returned by the server are passed
//	through unchanged.
//
// Usage:
//
//	m := manager.NewManager(codec.NewStringCodec(), false, true)
//	if err := m.Init("localhost:6379", "", transport.DefaultOptions()); err != nil {
//	    return err
//	}
//	defer m.Close(ctx)
//
//	err := m.StringCommands().Set(ctx, "key", "value")
//	value, found, err := m.StringCommands().Get(ctx, "key")
package manager
