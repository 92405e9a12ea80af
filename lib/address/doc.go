// Package address parses host specifications of the form
//
//	host[:port](,host[:port])*
//
// into an ordered list of ServerAddress values. Missing ports default to 6379.
// The resolver has no knowledge of the topology: whether more than one address is
// acceptable is decided by the caller.
package address
