// Package lockmgr implements a locking mechanism on top of any store.IStore.
// It provides a simple way to coordinate access to shared resources across
// multiple processes that talk to the same server or cluster.
//
// The lock manager only ever stores in the provided IStore and has no other internal
// state. Therefore it is safe to be created multiple times on the same store.
// It is even possible to create a new lock manager for every acquire and or release
// operation. As long as the same store is used every time, all locks will
// work as expected.
//
// Implementation Approach:
//
//	- Lock Acquisition: SetEIfUnset (SET NX) stores a randomly generated owner ID
//	  under the lock key. Only one requester can create the key, so a successful
//	  write means the lock is held.
//
//	- Timeouts: Locks can be configured with an optional timeout in seconds after
//	  which the server deletes the key, preventing deadlocks if a client crashes.
//
//	- Safe Release: ReleaseLock deletes the key only if it still holds the owner ID
//	  of the caller (DeleteIfEqual). A lock that no longer exists counts as released.
//
// Usage Example:
//
//	lockProvider := lockmgr.NewLockManager(store)
//
//	acquired, ownerID, err := lockProvider.AcquireLock(ctx, "resource:123", 30)
//	if err != nil {
//	    // Handle error
//	}
//
//	if acquired {
//	    // Use the resource
//	    released, err := lockProvider.ReleaseLock(ctx, "resource:123", ownerID)
//	}
//
// Security Considerations:
//
//	Owner IDs are random, which protects against accidentally releasing the lock
//	of another client. It is not designed to resist malicious clients with direct
//	access to the server.
package lockmgr
