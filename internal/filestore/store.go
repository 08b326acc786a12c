package filestore

import (
	"fmt"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/schema"
)

// New returns the file store for the configured source.
func New(cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (contract.FileStore, error) {
	switch cfg.Source {
	case schema.FSSource, "":
		return NewLocalStore(cfg.RootPath), nil
	case schema.GitSource:
		var cache contract.CacheStore
		if mgr != nil {
			cache = mgr.GetActivityStore()
		}
		return NewGitStore(cfg.RootPath, client, cache), nil
	default:
		return nil, fmt.Errorf("unsupported source: %s", cfg.Source)
	}
}
