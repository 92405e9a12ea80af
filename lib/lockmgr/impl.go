package lockmgr

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/ValentinKolb/kvconn/lib/store"
)

// ownerIDLength is the length of an owner ID in bytes
const ownerIDLength = 32

type lockMgrImpl struct {
	store store.IStore
}

// NewLockManager creates a lock manager storing its locks in store
func NewLockManager(store store.IStore) ILockManager {
	return &lockMgrImpl{
		store: store,
	}
}

func (lm *lockMgrImpl) AcquireLock(ctx context.Context, key string, timeout uint64) (bool, []byte, error) {
	ownerID := make([]byte, ownerIDLength)
	if _, err := rand.Read(ownerID); err != nil {
		return false, nil, fmt.Errorf("failed to generate owner id: %w", err)
	}

	// Try to acquire the lock (set the value only if it doesn't exist)
	stored, err := lm.store.SetEIfUnset(ctx, key, ownerID, timeout)
	if err != nil || !stored {
		return false, nil, err
	}
	return true, ownerID, nil
}

func (lm *lockMgrImpl) ReleaseLock(ctx context.Context, key string, ownerID []byte) (bool, error) {
	deleted, err := lm.store.DeleteIfEqual(ctx, key, ownerID)
	if err != nil || deleted {
		return deleted, err
	}

	// Not deleted: either the lock is gone (released) or it is held by someone else
	has, err := lm.store.Has(ctx, key)
	if err != nil {
		return false, err
	}
	return !has, nil
}
