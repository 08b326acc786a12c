package filestore

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/schema"
)

const (
	// currentCacheVersion defines the version of the cached timestamp schema.
	currentCacheVersion = 1

	// cacheTTL is how long a cached history stays valid for the same HEAD.
	cacheTTL = 7 * 24 * time.Hour
)

// GitStore derives file timestamps from commit history: the first commit
// touching a file is its creation and the latest is its modification.
type GitStore struct {
	root   string
	client contract.GitClient
	cache  contract.CacheStore // optional

	mu     sync.Mutex
	times  map[string]schema.FileTimestamps
	loaded bool
}

var _ contract.FileStore = &GitStore{} // Compile-time check

// NewGitStore returns a store for the repository at root. cache may be nil.
func NewGitStore(root string, client contract.GitClient, cache contract.CacheStore) *GitStore {
	return &GitStore{root: root, client: client, cache: cache}
}

// ListFiles returns the files tracked at HEAD.
func (s *GitStore) ListFiles(ctx context.Context) ([]string, error) {
	files, err := s.client.ListFilesAtRef(ctx, s.root, "HEAD")
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked files: %w", err)
	}
	return files, nil
}

// Stat returns the first and last commit instants of a tracked file.
func (s *GitStore) Stat(ctx context.Context, path string) (schema.FileTimestamps, error) {
	times, err := s.load(ctx)
	if err != nil {
		return schema.FileTimestamps{}, err
	}
	ts, ok := times[path]
	if !ok {
		return schema.FileTimestamps{}, fmt.Errorf("no commit history for %s", path)
	}
	return ts, nil
}

// load builds the per-file timestamps once per store, consulting the cache first.
func (s *GitStore) load(ctx context.Context) (map[string]schema.FileTimestamps, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.times, nil
	}

	key := s.cacheKey(ctx)
	if times := s.checkCacheHit(key); times != nil {
		contract.LogDebug("git history cache hit", "root", s.root)
		s.times, s.loaded = times, true
		return times, nil
	}

	out, err := s.client.GetFileTimesLog(ctx, s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit history: %w", err)
	}
	times, err := ParseFileTimesLog(out)
	if err != nil {
		return nil, err
	}
	s.store(key, times)
	s.times, s.loaded = times, true
	return times, nil
}

// Invalidate drops the in-memory history so the next Stat re-reads it.
func (s *GitStore) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.times, s.loaded = nil, false
}

// cacheKey ties cached history to the repository and its HEAD commit.
// An empty key disables caching for this load.
func (s *GitStore) cacheKey(ctx context.Context) string {
	if s.cache == nil {
		return ""
	}
	hash, err := s.client.GetRepoHash(ctx, s.root)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte("filetimes:"+s.root+":"+hash)))
}

// checkCacheHit attempts to retrieve and validate a cached history.
func (s *GitStore) checkCacheHit(key string) map[string]schema.FileTimestamps {
	if key == "" {
		return nil
	}
	data, version, ts, err := s.cache.Get(key)
	if err != nil {
		return nil // Cache miss
	}
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheTTL {
		return nil // Stale or version mismatch
	}
	var times map[string]schema.FileTimestamps
	if err := json.Unmarshal(data, &times); err != nil {
		return nil
	}
	return times
}

func (s *GitStore) store(key string, times map[string]schema.FileTimestamps) {
	if key == "" {
		return
	}
	data, err := json.Marshal(times)
	if err != nil {
		return
	}
	if err := s.cache.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("Failed to cache commit history", err)
	}
}

// ParseFileTimesLog folds a name-only log into per-file instants. Each commit
// starts with a line holding a NUL byte and its RFC3339 date.
func ParseFileTimesLog(out []byte) (map[string]schema.FileTimestamps, error) {
	times := make(map[string]schema.FileTimestamps)
	var current time.Time
	haveCommit := false

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if after, ok := strings.CutPrefix(line, "\x00"); ok {
			date := strings.TrimSpace(after)
			t, err := time.Parse(time.RFC3339, date)
			if err != nil {
				return nil, fmt.Errorf("invalid commit date %q: %w", date, err)
			}
			current, haveCommit = t, true
			continue
		}
		if !haveCommit {
			continue
		}
		line = unquotePath(line)

		ts, ok := times[line]
		if !ok {
			times[line] = schema.FileTimestamps{CreatedAt: current, ModifiedAt: current}
			continue
		}
		if current.Before(ts.CreatedAt) {
			ts.CreatedAt = current
		}
		if current.After(ts.ModifiedAt) {
			ts.ModifiedAt = current
		}
		times[line] = ts
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan commit history: %w", err)
	}
	return times, nil
}

// unquotePath undoes git's C-style quoting, which still applies to names with
// control characters, quotes or backslashes.
func unquotePath(name string) string {
	if len(name) < 2 || name[0] != '"' || name[len(name)-1] != '"' {
		return name
	}
	if unquoted, err := strconv.Unquote(name); err == nil {
		return unquoted
	}
	return name
}
