package address

import (
	"net"
	"strconv"
	"strings"

	"github.com/ValentinKolb/kvconn/lib/connector"
)

const (
	// DefaultPort is the well known port of the store
	DefaultPort = 6379

	hostsSeparator    = ","
	hostPortSeparator = ":"
	maxPort           = 65535
)

// ServerAddress is a single host/port pair
type ServerAddress struct {
	Host string
	Port int
}

// String returns the address in host:port form
func (a ServerAddress) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Resolve splits hosts on "," and parses every token as host[:port].
// Order is preserved, empty tokens and duplicates are passed through unchanged.
// A token with more than one ":" or a port that is not an integer in [0, 65535]
// fails with connector.ErrInvalidAddress carrying the token.
func Resolve(hosts string) ([]ServerAddress, error) {
	tokens := strings.Split(hosts, hostsSeparator)
	result := make([]ServerAddress, 0, len(tokens))
	for _, token := range tokens {
		addr, err := parse(token)
		if err != nil {
			return nil, err
		}
		result = append(result, addr)
	}
	return result, nil
}

// parse parses a single host[:port] token
func parse(token string) (ServerAddress, error) {
	parts := strings.Split(token, hostPortSeparator)
	if len(parts) > 2 {
		return ServerAddress{}, connector.WrapError(connector.RetCInvalidAddress,
			"host string must have the form host[:port]", token, nil)
	}

	if len(parts) == 1 {
		return ServerAddress{Host: parts[0], Port: DefaultPort}, nil
	}

	port, err := strconv.Atoi(parts[1])
	if err != nil {
		return ServerAddress{}, connector.WrapError(connector.RetCInvalidAddress,
			"port of the host string must be an integer", token, err)
	}
	if port < 0 || port > maxPort {
		return ServerAddress{}, connector.WrapError(connector.RetCInvalidAddress,
			"port of the host string is out of range", token, nil)
	}

	return ServerAddress{Host: parts[0], Port: port}, nil
}
