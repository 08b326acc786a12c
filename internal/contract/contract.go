// Package contract provides interfaces and shared utilities for streak's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/streak/schema"
)

// FileStore is the host file store the refresher reads candidate files from.
// Paths are relative to the store root and use forward slashes.
type FileStore interface {
	// ListFiles returns every currently known file, in arbitrary order.
	ListFiles(ctx context.Context) ([]string, error)

	// Stat returns the creation and modification instants of a single file.
	Stat(ctx context.Context, path string) (schema.FileTimestamps, error)
}

// GitClient defines the Git operations needed to derive file timestamps from history.
// This allows the git file store to be tested without needing a real git executable.
type GitClient interface {
	// Run executes a git command and returns the output.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// ListFilesAtRef returns all tracked files at a specific reference.
	ListFilesAtRef(ctx context.Context, repoPath string, ref string) ([]string, error)

	// GetFileTimesLog returns the raw name-only commit log used to derive per-file instants.
	GetFileTimesLog(ctx context.Context, repoPath string) ([]byte, error)
}

// CacheManager defines the interface for managing the persistent stores.
// This allows the storage layer to be mocked for testing.
type CacheManager interface {
	GetActivityStore() CacheStore
	GetSettingsStore() SettingsStore
}

// CacheStore defines the interface for cache data storage.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// SettingsStore persists the single settings record.
type SettingsStore interface {
	// Load returns the saved record, or the defaults when nothing was saved yet.
	Load() (schema.Settings, error)

	// Save writes the record back, replacing any previous one.
	Save(settings schema.Settings, updatedAt time.Time) error

	// GetStatus returns status information about the settings store.
	GetStatus() (schema.SettingsStatus, error)

	// Close closes the underlying connection.
	Close() error
}
