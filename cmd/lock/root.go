package lock

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/ValentinKolb/kvconn/cmd/util"
	"github.com/ValentinKolb/kvconn/lib/lockmgr"
	"github.com/ValentinKolb/kvconn/lib/manager"
	"github.com/ValentinKolb/kvconn/lib/store/rstore"
	"github.com/spf13/cobra"
)

var (
	lockManager    *manager.Manager[string, []byte]
	redisLockMgr   lockmgr.ILockManager
	acquireTimeout uint64

	// LockCommands represents the lock command group
	LockCommands = &cobra.Command{
		Use:                "lock",
		Short:              "Perform lock operations",
		PersistentPreRunE:  setupLockClient,
		PersistentPostRunE: closeLockClient,
	}

	// acquireCmd represents the acquire command
	acquireCmd = &cobra.Command{
		Use:   "acquire [key]",
		Short: "Acquire a lock",
		Args:  cobra.ExactArgs(1),
		RunE:  runAcquire,
	}

	// releaseCmd represents the release command
	releaseCmd = &cobra.Command{
		Use:   "release [key] [ownerID]",
		Short: "Release a previously acquired lock",
		Long:  "Release a lock using the key and owner ID. The owner ID is the hex string returned by the acquire command.",
		Args:  cobra.ExactArgs(2),
		RunE:  runRelease,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add subcommands to lock command
	LockCommands.AddCommand(acquireCmd)
	LockCommands.AddCommand(releaseCmd)

	// Add connection flags to the lock command
	util.SetupConnectionFlags(LockCommands)

	// Add flags specific to acquire
	acquireCmd.Flags().Uint64Var(&acquireTimeout, "ttl", 30, "Lock timeout in seconds (0 for no timeout)")
}

// setupLockClient initializes the lock manager on top of a Redis backed store
func setupLockClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	m, err := util.NewBytesManager()
	if err != nil {
		return err
	}

	lockManager = m
	redisLockMgr = lockmgr.NewLockManager(rstore.NewRedisStore(m))
	return nil
}

// closeLockClient closes all connections of the manager
func closeLockClient(_ *cobra.Command, _ []string) error {
	if lockManager == nil {
		return nil
	}
	return lockManager.Close(context.Background())
}

// runAcquire handles the acquire lock command
func runAcquire(_ *cobra.Command, args []string) error {
	key := args[0]

	ctx, cancel := util.CommandContext()
	defer cancel()

	// Attempt to acquire the lock
	acquired, ownerID, err := redisLockMgr.AcquireLock(ctx, key, acquireTimeout)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %v", err)
	}

	if !acquired {
		fmt.Printf("acquired=false\n")
		return nil
	}

	// Convert owner ID to hex string for display
	fmt.Printf("acquired=true, ownerId=%s\n", hex.EncodeToString(ownerID))

	return nil
}

// runRelease handles the release lock command
func runRelease(_ *cobra.Command, args []string) error {
	key := args[0]

	// Convert hex string owner ID back to bytes
	ownerID, err := hex.DecodeString(args[1])
	if err != nil {
		return fmt.Errorf("invalid owner ID format: %v", err)
	}

	ctx, cancel := util.CommandContext()
	defer cancel()

	// Attempt to release the lock
	released, err := redisLockMgr.ReleaseLock(ctx, key, ownerID)
	if err != nil {
		return fmt.Errorf("failed to release lock: %v", err)
	}

	fmt.Printf("released=%v\n", released)

	return nil
}
