package transport

import (
	"github.com/spf13/cast"
)

// Unset marks an integer option as "not set, use the default". Any negative value is treated the same.
const Unset = -1

// Keys of the generic options bag (see OptionsFromMap)
const (
	KeyClientName          = "clientName"
	KeyConnectionTimeoutMs = "connectionTimeoutMs"
	KeyDatabase            = "database"
	KeySslEnabled          = "sslEnabled"
	KeyStartTlsEnabled     = "startTlsEnabled"
	KeyVerifyPeerEnabled   = "verifyPeerEnabled"
)

// Options are the user facing transport options
type Options struct {
	// ClientName is sent with CLIENT SETNAME, ignored if blank
	ClientName string
	// ConnectionTimeoutMs is the connect timeout in milliseconds, Unset for the client default
	ConnectionTimeoutMs int
	// Database is the database index to select, Unset for the server default
	Database int
	// SslEnabled enables TLS
	SslEnabled bool
	// StartTlsEnabled defers the TLS handshake to the first write (only with SslEnabled)
	StartTlsEnabled bool
	// VerifyPeerEnabled verifies the server certificate (only with SslEnabled)
	VerifyPeerEnabled bool
}

// DefaultOptions returns options with every flag disabled and every integer Unset
func DefaultOptions() Options {
	return Options{
		ConnectionTimeoutMs: Unset,
		Database:            Unset,
	}
}

// OptionsFromMap reads Options from a generic options bag.
// Absent keys and values that cannot be converted keep their default.
func OptionsFromMap(m map[string]any) Options {
	opts := DefaultOptions()

	if v, ok := m[KeyClientName]; ok {
		if s, err := cast.ToStringE(v); err == nil {
			opts.ClientName = s
		}
	}

	readInt := func(key string, dst *int) {
		if v, ok := m[key]; ok {
			if i, err := cast.ToIntE(v); err == nil {
				*dst = i
			}
		}
	}
	readInt(KeyConnectionTimeoutMs, &opts.ConnectionTimeoutMs)
	readInt(KeyDatabase, &opts.Database)

	readBool := func(key string, dst *bool) {
		if v, ok := m[key]; ok {
			if b, err := cast.ToBoolE(v); err == nil {
				*dst = b
			}
		}
	}
	readBool(KeySslEnabled, &opts.SslEnabled)
	readBool(KeyStartTlsEnabled, &opts.StartTlsEnabled)
	readBool(KeyVerifyPeerEnabled, &opts.VerifyPeerEnabled)

	return opts
}
