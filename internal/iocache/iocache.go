// Package iocache persists streak settings and caches expensive I/O results.
package iocache

import (
	"sync"

	"github.com/huangsam/streak/internal/contract"
)

// CacheStoreManager manages the activity cache and the settings store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	activity     contract.CacheStore
	settings     contract.SettingsStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetActivityStore returns the activity CacheStore.
func (mgr *CacheStoreManager) GetActivityStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.activity
}

// GetSettingsStore returns the SettingsStore.
func (mgr *CacheStoreManager) GetSettingsStore() contract.SettingsStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.settings
}
