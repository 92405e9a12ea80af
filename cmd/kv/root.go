package kv

import (
	"context"

	"github.com/ValentinKolb/kvconn/cmd/util"
	"github.com/ValentinKolb/kvconn/lib/manager"
	"github.com/ValentinKolb/kvconn/lib/store"
	"github.com/ValentinKolb/kvconn/lib/store/rstore"
	"github.com/spf13/cobra"
)

var (
	kvManager *manager.Manager[string, []byte]
	kvStore   store.IStore

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:                "kv",
		Short:              "Perform key-value store operations",
		PersistentPreRunE:  setupKVClient,
		PersistentPostRunE: closeKVClient,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add connection flags to the KV command
	util.SetupConnectionFlags(KeyValueCommands)

	// Add subcommands
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(setECmd)
	KeyValueCommands.AddCommand(setEIfUnsetCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(expireCmd)
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(hasCmd)
	KeyValueCommands.AddCommand(infoCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}

// setupKVClient initializes the connection manager and the store on top of it
func setupKVClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	m, err := util.NewBytesManager()
	if err != nil {
		return err
	}

	kvManager = m
	kvStore = rstore.NewRedisStore(m)
	return nil
}

// closeKVClient closes all connections of the manager
func closeKVClient(_ *cobra.Command, _ []string) error {
	if kvManager == nil {
		return nil
	}
	return kvManager.Close(context.Background())
}
