package hash

import (
	"context"
	"fmt"
	"sort"

	"github.com/ValentinKolb/kvconn/cmd/util"
	"github.com/ValentinKolb/kvconn/lib/manager"
	"github.com/spf13/cobra"
)

var (
	hashManager *manager.Manager[string, string]

	// HashCommands represents the hash command group
	HashCommands = &cobra.Command{
		Use:                "hash",
		Short:              "Perform hash operations",
		PersistentPreRunE:  setupHashClient,
		PersistentPostRunE: closeHashClient,
	}

	hsetCmd = &cobra.Command{
		Use:   "hset [key] [field] [value]",
		Short: "Sets a field of a hash",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := util.CommandContext()
			defer cancel()

			created, err := hashManager.HashCommands().HSet(ctx, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, field=%s, created=%t\n", args[0], args[1], created)
			return nil
		},
	}
	hgetCmd = &cobra.Command{
		Use:   "hget [key] [field]",
		Short: "Reads a field of a hash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := util.CommandContext()
			defer cancel()

			value, found, err := hashManager.HashCommands().HGet(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, field=%s, found=%t, value=%s\n", args[0], args[1], found, value)
			return nil
		},
	}
	hdelCmd = &cobra.Command{
		Use:   "hdel [key] [field...]",
		Short: "Deletes fields of a hash",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := util.CommandContext()
			defer cancel()

			n, err := hashManager.HashCommands().HDel(ctx, args[0], args[1:]...)
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, deleted=%d\n", args[0], n)
			return nil
		},
	}
	hgetallCmd = &cobra.Command{
		Use:   "hgetall [key]",
		Short: "Reads all fields of a hash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := util.CommandContext()
			defer cancel()

			fields, err := hashManager.HashCommands().HGetAll(ctx, args[0])
			if err != nil {
				return err
			}

			names := make([]string, 0, len(fields))
			for name := range fields {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				fmt.Printf("%s=%s\n", name, fields[name])
			}
			return nil
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add connection flags to the hash command
	util.SetupConnectionFlags(HashCommands)

	// Add subcommands
	HashCommands.AddCommand(hsetCmd)
	HashCommands.AddCommand(hgetCmd)
	HashCommands.AddCommand(hdelCmd)
	HashCommands.AddCommand(hgetallCmd)
}

func setupHashClient(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	m, err := util.NewStringManager()
	if err != nil {
		return err
	}
	hashManager = m
	return nil
}

func closeHashClient(_ *cobra.Command, _ []string) error {
	if hashManager == nil {
		return nil
	}
	return hashManager.Close(context.Background())
}
