// Package pool provides a bounded, generic connection pool on top of go-commons-pool.
//
// A ConnectionPool is created with a Supplier that opens one new connection. The pool
// calls it lazily whenever Borrow finds no idle connection and the pool is below its
// MaxTotal limit. Borrowed connections are handed back with Return (or dropped with
// Invalidate) and become idle again, up to MaxIdle.
//
// Errors returned by Borrow are connector errors and can be matched with errors.Is:
//
//   - connector.ErrPoolClosed: Close has been called.
//   - connector.ErrPoolExhausted: MaxTotal connections are borrowed and none was returned
//     in time (immediately with BlockWhenExhausted=false, after MaxWait or when the
//     context is done otherwise).
//   - connector.ErrConnectionAcquisition: the Supplier failed. The cause is wrapped.
//
// Every pool keeps its own VictoriaMetrics set (borrowed, returned, created, destroyed
// and failed borrows plus idle and active gauges, labeled with the pool name). Stats
// returns a snapshot and WritePrometheus exports the set.
package pool
