package connector

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

// RetCode classifies an Error. Two errors with the same code match with errors.Is.
type RetCode uint64

const (
	RetCUnknown               RetCode = iota // 0: Unclassified failure.
	RetCInvalidAddress                       // 1: Malformed host[:port] token.
	RetCUnsupportedTopology                  // 2: Address list does not fit the topology.
	RetCConnectionAcquisition                // 3: Connect or borrow failed.
	RetCPoolExhausted                        // 4: No idle connection and none may be created.
	RetCPoolClosed                           // 5: Borrow attempted after the pool was closed.
	RetCNotInitialized                       // 6: Manager used before a successful Init.
	RetCAlreadyInitialized                   // 7: Init called on an initialized manager.
	RetCInvalidHandle                        // 8: Handle does not belong to the manager's topology.
	RetCCodec                                // 9: Key or value could not be encoded/decoded.
)

// String returns the name of the return code.
func (c RetCode) String() string {
	switch c {
	case RetCInvalidAddress:
		return "InvalidAddress"
	case RetCUnsupportedTopology:
		return "UnsupportedTopology"
	case RetCConnectionAcquisition:
		return "ConnectionAcquisition"
	case RetCPoolExhausted:
		return "PoolExhausted"
	case RetCPoolClosed:
		return "PoolClosed"
	case RetCNotInitialized:
		return "NotInitialized"
	case RetCAlreadyInitialized:
		return "AlreadyInitialized"
	case RetCInvalidHandle:
		return "InvalidHandle"
	case RetCCodec:
		return "Codec"
	default:
		return "Unknown"
	}
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error wraps a return code, a message, the offending input (an address token,
// the pool name, ...) and an optional cause.
type Error struct {
	Code  RetCode // The return code
	Msg   string  // The error message
	Input string  // The input that caused the error, may be empty
	Err   error   // The underlying cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("kvconn error (code %s): %s", e.Code, e.Msg)
	if e.Input != "" {
		msg += fmt.Sprintf(" [%s]", e.Input)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// WrapError creates a new Error with the given code, message, offending input and cause.
func WrapError(code RetCode, msg, input string, cause error) *Error {
	return &Error{
		Code:  code,
		Msg:   msg,
		Input: input,
		Err:   cause,
	}
}

// --------------------------------------------------------------------------
// Sentinels (use with errors.Is)
// --------------------------------------------------------------------------

var (
	ErrInvalidAddress        = NewError(RetCInvalidAddress, "invalid address")
	ErrUnsupportedTopology   = NewError(RetCUnsupportedTopology, "unsupported topology")
	ErrConnectionAcquisition = NewError(RetCConnectionAcquisition, "connection acquisition failed")
	ErrPoolExhausted         = NewError(RetCPoolExhausted, "pool exhausted")
	ErrPoolClosed            = NewError(RetCPoolClosed, "pool closed")
	ErrNotInitialized        = NewError(RetCNotInitialized, "connection manager not initialized")
	ErrAlreadyInitialized    = NewError(RetCAlreadyInitialized, "connection manager already initialized")
	ErrInvalidHandle         = NewError(RetCInvalidHandle, "invalid command handle")
	ErrCodec                 = NewError(RetCCodec, "codec failure")
)
