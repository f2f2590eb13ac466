package store

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gapdebug/gapdebug/internal/types"
)

// ProfileCache persists the cached UserProfile as a single named snapshot.
// The profile is the unit of persistence: updates replace the whole object.
type ProfileCache struct {
	mu        sync.Mutex
	snapshots SnapshotStore
}

// NewProfileCache returns a profile cache over the given snapshot store.
func NewProfileCache(snapshots SnapshotStore) *ProfileCache {
	return &ProfileCache{snapshots: snapshots}
}

// Load reads the cached profile. Returns (nil, nil) when no profile has been
// saved yet.
func (c *ProfileCache) Load() (*types.UserProfile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.snapshots.Load(SnapshotProfile)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var profile types.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode cached profile: %w", err)
	}
	return &profile, nil
}

// Save serializes the profile wholesale and replaces the snapshot.
func (c *ProfileCache) Save(profile *types.UserProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return c.snapshots.Save(SnapshotProfile, data)
}
