package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/kvconn/cmd/hash"
	"github.com/ValentinKolb/kvconn/cmd/kv"
	"github.com/ValentinKolb/kvconn/cmd/lock"
	"github.com/ValentinKolb/kvconn/cmd/ping"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "kvconn",
		Short: "Redis connection manager",
		Long: fmt.Sprintf(`kvconn (v%s)

A connection management layer for Redis written in Go. It connects to
standalone servers and clusters, directly or through a connection pool.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of kvconn",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("kvconn v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(hash.HashCommands)
	RootCmd.AddCommand(lock.LockCommands)
	RootCmd.AddCommand(ping.PingCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
