package ping

import (
	"context"
	"fmt"
	"time"

	"github.com/ValentinKolb/kvconn/cmd/util"
	"github.com/ValentinKolb/kvconn/lib/manager"
	"github.com/spf13/cobra"
)

var (
	pingManager *manager.Manager[string, string]

	// PingCmd checks that the configured server or cluster is reachable
	PingCmd = &cobra.Command{
		Use:                "ping",
		Short:              "Ping the server or cluster",
		Args:               cobra.NoArgs,
		PersistentPreRunE:  setupPingClient,
		PersistentPostRunE: closePingClient,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := util.CommandContext()
			defer cancel()

			start := time.Now()
			resp, err := pingManager.ConnectionCommands().Ping(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s, cluster=%t, pooled=%t)\n",
				resp, time.Since(start), pingManager.IsClusterConnection(), pingManager.IsPoolingEnabled())
			return nil
		},
	}

	echoCmd = &cobra.Command{
		Use:   "echo [message]",
		Short: "Echo a message through the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := util.CommandContext()
			defer cancel()

			resp, err := pingManager.ConnectionCommands().Echo(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Println(resp)
			return nil
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	util.SetupConnectionFlags(PingCmd)

	PingCmd.AddCommand(echoCmd)
}

func setupPingClient(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	m, err := util.NewStringManager()
	if err != nil {
		return err
	}
	pingManager = m
	return nil
}

func closePingClient(_ *cobra.Command, _ []string) error {
	if pingManager == nil {
		return nil
	}
	return pingManager.Close(context.Background())
}
