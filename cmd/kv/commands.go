package kv

import (
	"fmt"
	"strconv"

	"github.com/ValentinKolb/kvconn/cmd/util"
	"github.com/spf13/cobra"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := util.CommandContext()
			defer cancel()

			if err := kvStore.Set(ctx, args[0], []byte(args[1])); err != nil {
				return err
			}
			fmt.Println("set successfully")
			return nil
		},
	}
	setECmd = &cobra.Command{
		Use:   "setE [key] [value] [expireIn]",
		Short: "Sets the value for a key that is deleted after expireIn seconds",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			expireIn, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("expireIn must be a number: %w", err)
			}

			ctx, cancel := util.CommandContext()
			defer cancel()

			if err := kvStore.SetE(ctx, args[0], []byte(args[1]), expireIn); err != nil {
				return err
			}
			fmt.Println("setE successfully")
			return nil
		},
	}
	setEIfUnsetCmd = &cobra.Command{
		Use:   "setEIfUnset [key] [value] [expireIn]",
		Short: "Sets the value for a key with expiration if the key is not already set",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			expireIn, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("expireIn must be a number: %w", err)
			}

			ctx, cancel := util.CommandContext()
			defer cancel()

			stored, err := kvStore.SetEIfUnset(ctx, args[0], []byte(args[1]), expireIn)
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, stored=%t\n", args[0], stored)
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := util.CommandContext()
			defer cancel()

			resp, ok, err := kvStore.Get(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, found=%v, resp=%s\n", args[0], ok, resp)
			return nil
		},
	}
	expireCmd = &cobra.Command{
		Use:   "expire [key] [seconds]",
		Short: "Deletes the key after the given number of seconds (0 deletes it now)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("seconds must be a number: %w", err)
			}

			ctx, cancel := util.CommandContext()
			defer cancel()

			ok, err := kvStore.Expire(ctx, args[0], seconds)
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, found=%t\n", args[0], ok)
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key value pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := util.CommandContext()
			defer cancel()

			if err := kvStore.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println("delete successfully")
			return nil
		},
	}
	hasCmd = &cobra.Command{
		Use:   "has [key]",
		Short: "Checks if a key exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := util.CommandContext()
			defer cancel()

			found, err := kvStore.Has(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, found=%t\n", args[0], found)
			return nil
		},
	}
	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Prints information about the database and the connection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := util.CommandContext()
			defer cancel()

			info, err := kvStore.GetDBInfo(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("keys=%d, topology=%s, pooled=%t\n", info.Keys, info.Topology, info.Pooled)
			if stats, ok := kvManager.PoolStats(); ok {
				fmt.Print(stats.String())
			}
			return nil
		},
	}
)
