package transport

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// TransportConfig is the concrete configuration of a connection to a single node.
// Optional settings are nil when unset.
type TransportConfig struct {
	Host string
	Port int

	TLSEnabled        bool
	StartTLSEnabled   bool
	VerifyPeerEnabled bool

	Database          *int
	ConnectionTimeout *time.Duration
	ClientName        *string
	Password          *string
}

// Build translates the options into a TransportConfig for host:port.
// It never fails: negative integers (Unset), blank client names and blank passwords are left unset.
func Build(host string, port int, password string, opts Options) TransportConfig {
	c := TransportConfig{
		Host:              host,
		Port:              port,
		TLSEnabled:        opts.SslEnabled,
		StartTLSEnabled:   opts.StartTlsEnabled,
		VerifyPeerEnabled: opts.VerifyPeerEnabled,
	}

	if opts.Database >= 0 {
		db := opts.Database
		c.Database = &db
	}

	if opts.ConnectionTimeoutMs >= 0 {
		timeout := time.Duration(opts.ConnectionTimeoutMs) * time.Millisecond
		c.ConnectionTimeout = &timeout
	}

	if name := strings.TrimSpace(opts.ClientName); name != "" {
		c.ClientName = &name
	}

	if strings.TrimSpace(password) != "" {
		pw := password
		c.Password = &pw
	}

	return c
}

// Addr returns the node address in host:port form
func (c TransportConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// String returns a formatted string representation of the configuration.
// The password is never printed.
func (c TransportConfig) String() string {
	var sb strings.Builder

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}
	orUnset := func(set bool, value func() string) string {
		if !set {
			return "(unset)"
		}
		return value()
	}

	addField("Address", c.Addr())
	addField("TLS", strconv.FormatBool(c.TLSEnabled))
	addField("Start TLS", strconv.FormatBool(c.StartTLSEnabled))
	addField("Verify Peer", strconv.FormatBool(c.VerifyPeerEnabled))
	addField("Database", orUnset(c.Database != nil, func() string { return strconv.Itoa(*c.Database) }))
	addField("Connect Timeout", orUnset(c.ConnectionTimeout != nil, func() string { return c.ConnectionTimeout.String() }))
	addField("Client Name", orUnset(c.ClientName != nil, func() string { return *c.ClientName }))
	addField("Password", orUnset(c.Password != nil, func() string { return "********" }))

	return sb.String()
}
