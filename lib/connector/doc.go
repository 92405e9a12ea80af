// Package connector holds the pieces shared by every kvconn package: the error
// taxonomy and the logging setup.
//
// Key Components:
//
//   - Error: A structured error carrying a RetCode, a message, the offending input
//     (an address token, a pool name, ...) and an optional cause. Errors compare by
//     code with errors.Is, so callers can match against the exported sentinels
//     (ErrInvalidAddress, ErrUnsupportedTopology, ErrConnectionAcquisition,
//     ErrPoolExhausted, ErrPoolClosed, ...) while still getting the concrete input
//     in the message. Causes are preserved and reachable with errors.Unwrap.
//
//   - Logger: A custom implementation of dragonboat's logger.ILogger with the
//     "LEVEL | name | message" format. Packages grab their logger once with
//     logger.GetLogger(name); InitLoggers installs the factory and sets the level.
//
// Propagation Policy:
//
//	Every failure is returned to the caller of the operation that caused it.
//	Nothing is retried and nothing is logged-and-dropped.
package connector
