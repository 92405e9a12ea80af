package util

import (
	"context"
	"strings"
	"time"

	"github.com/ValentinKolb/kvconn/lib/codec"
	"github.com/ValentinKolb/kvconn/lib/connector"
	"github.com/ValentinKolb/kvconn/lib/manager"
	"github.com/ValentinKolb/kvconn/lib/pool"
	"github.com/ValentinKolb/kvconn/lib/transport"
	"github.com/joho/godotenv"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Logger is the logger of the command line client
var Logger = logger.GetLogger(connector.LoggerCLI)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupConnectionFlags adds the connection flags to a command
func SetupConnectionFlags(cmd *cobra.Command) {
	key := "hosts"
	cmd.PersistentFlags().String(key, "localhost:6379", WrapString("Comma-separated list of host[:port] addresses. Standalone mode accepts exactly one, in cluster mode every address is a seed node"))

	key = "password"
	cmd.PersistentFlags().String(key, "", WrapString("The password of the server (better set KVCONN_PASSWORD)"))

	key = "cluster"
	cmd.PersistentFlags().Bool(key, false, WrapString("Connect to a cluster instead of a standalone server"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The timeout in seconds of a command"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "warning", WrapString("The log level (debug, info, warning, error)"))

	// transport
	key = "database"
	cmd.PersistentFlags().Int(key, transport.Unset, WrapString("The database index to select (-1 for the server default, ignored in cluster mode)"))

	key = "connect-timeout-ms"
	cmd.PersistentFlags().Int(key, transport.Unset, WrapString("The connect timeout in milliseconds (-1 for the client default)"))

	key = "client-name"
	cmd.PersistentFlags().String(key, "", WrapString("The name of the connection as shown by CLIENT LIST"))

	key = "ssl"
	cmd.PersistentFlags().Bool(key, false, WrapString("Connect using TLS"))

	key = "start-tls"
	cmd.PersistentFlags().Bool(key, false, WrapString("Defer the TLS handshake to the first command (only with --ssl)"))

	key = "verify-peer"
	cmd.PersistentFlags().Bool(key, false, WrapString("Verify the server certificate (only with --ssl)"))

	// pool
	defaults := pool.DefaultConfig()

	key = "pool"
	cmd.PersistentFlags().Bool(key, false, WrapString("Borrow a pooled connection per command instead of sharing one connection"))

	key = "pool-max-total"
	cmd.PersistentFlags().Int(key, defaults.MaxTotal, WrapString("Maximum number of pooled connections"))

	key = "pool-max-idle"
	cmd.PersistentFlags().Int(key, defaults.MaxIdle, WrapString("Maximum number of idle pooled connections"))

	key = "pool-min-idle"
	cmd.PersistentFlags().Int(key, defaults.MinIdle, WrapString("Minimum number of idle pooled connections"))

	key = "pool-max-wait-ms"
	cmd.PersistentFlags().Int(key, int(defaults.MaxWait/time.Millisecond), WrapString("How long to wait for a free pooled connection in milliseconds (0 until the command timeout)"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("kvconn")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// GetManagerConfig reads the manager configuration from viper
func GetManagerConfig() manager.Config {
	config := manager.DefaultConfig()
	config.Cluster = viper.GetBool("cluster")
	config.Pooling = viper.GetBool("pool")
	config.Pool.MaxTotal = viper.GetInt("pool-max-total")
	config.Pool.MaxIdle = viper.GetInt("pool-max-idle")
	config.Pool.MinIdle = viper.GetInt("pool-min-idle")
	config.Pool.MaxWait = time.Duration(viper.GetInt("pool-max-wait-ms")) * time.Millisecond
	return config
}

// GetTransportOptions reads the transport options from viper
func GetTransportOptions() transport.Options {
	return transport.OptionsFromMap(map[string]any{
		transport.KeyClientName:          viper.Get("client-name"),
		transport.KeyConnectionTimeoutMs: viper.Get("connect-timeout-ms"),
		transport.KeyDatabase:            viper.Get("database"),
		transport.KeySslEnabled:          viper.Get("ssl"),
		transport.KeyStartTlsEnabled:     viper.Get("start-tls"),
		transport.KeyVerifyPeerEnabled:   viper.Get("verify-peer"),
	})
}

// NewManager creates and initializes a connection manager from the viper configuration
func NewManager[K any, V any](c codec.Codec[K, V]) (*manager.Manager[K, V], error) {
	if err := connector.InitLoggers(viper.GetString("log-level")); err != nil {
		return nil, err
	}

	config := GetManagerConfig()
	hosts := viper.GetString("hosts")
	Logger.Infof("connecting to %s (cluster=%t, pooled=%t)", hosts, config.Cluster, config.Pooling)

	m := manager.NewManagerWithConfig(c, config)
	if err := m.Init(hosts, viper.GetString("password"), GetTransportOptions()); err != nil {
		return nil, err
	}
	return m, nil
}

// NewStringManager creates the manager used by commands that read and print text
func NewStringManager() (*manager.Manager[string, string], error) {
	return NewManager(codec.NewStringCodec())
}

// NewBytesManager creates the manager used by the store based commands
func NewBytesManager() (*manager.Manager[string, []byte], error) {
	return NewManager(codec.NewBytesCodec())
}

// CommandContext returns a context bounded by the configured command timeout
func CommandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(viper.GetInt("timeout"))*time.Second)
}
