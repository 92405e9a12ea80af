// Package store provides a narrow key-value interface (IStore) with string keys, byte values
// and expiration in seconds. It is the abstraction the lock manager and the command line
// client are written against.
//
// Implementations:
//
//	- Redis Store (rstore): Runs every operation through a manager.Manager, so the same
//	  store works with a standalone server or a cluster and with or without pooling.
//	  Conditional writes map to SET NX, the compare-and-delete used to release locks is a
//	  server side script and therefore atomic.
//	  Available in the "github.com/ValentinKolb/kvconn/lib/store/rstore" package.
package store
