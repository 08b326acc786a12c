// Package watch triggers a callback when files under a root are created or modified.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/huangsam/streak/internal/contract"
)

// tickInterval is how often pending changes are checked against the debounce window.
const tickInterval = 100 * time.Millisecond

// ChangeFunc receives the root-relative paths that changed since the last call.
type ChangeFunc func(ctx context.Context, paths []string)

// Config contains watcher configuration.
type Config struct {
	Root       string
	Extensions []string      // empty means every file
	Debounce   time.Duration // Default: 500ms
	OnChange   ChangeFunc

	// GitDir, when set, also reports HEAD and ref updates so new commits trigger a refresh.
	GitDir string
}

// Watcher watches a directory tree and reports settled changes.
type Watcher struct {
	root       string
	gitDir     string
	extensions []string
	debounce   time.Duration
	onChange   ChangeFunc

	watcher *fsnotify.Watcher

	pendingMu sync.Mutex
	pending   map[string]time.Time
}

// New creates a watcher; call Watch to start it.
func New(cfg Config) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = contract.DefaultDebounce
	}

	return &Watcher{
		root:       cfg.Root,
		gitDir:     cfg.GitDir,
		extensions: cfg.Extensions,
		debounce:   debounce,
		onChange:   cfg.OnChange,
		watcher:    fw,
		pending:    make(map[string]time.Time),
	}, nil
}

// Watch blocks until ctx is cancelled, invoking OnChange from a single goroutine.
func (w *Watcher) Watch(ctx context.Context) error {
	if err := w.addWatchDirs(w.root); err != nil {
		_ = w.watcher.Close()
		return err
	}
	if w.gitDir != "" {
		if err := w.addGitDirs(); err != nil {
			_ = w.watcher.Close()
			return err
		}
	}
	contract.LogDebug("watching for file changes", "dir", w.root, "gitDir", w.gitDir)

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.processDebounced(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	for {
		select {
		case <-ctx.Done():
			return w.watcher.Close()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			contract.LogWarn("Watcher error", err)
		}
	}
}

// addWatchDirs recursively adds non-hidden directories under dir.
func (w *Watcher) addWatchDirs(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			contract.LogWarn("Failed to watch directory "+path, err)
		}
		return nil
	})
}

// addGitDirs watches the git directory itself for HEAD and packed-refs, and
// every directory under refs/ for branch updates.
func (w *Watcher) addGitDirs() error {
	if err := w.watcher.Add(w.gitDir); err != nil {
		return err
	}
	return filepath.WalkDir(filepath.Join(w.gitDir, "refs"), func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			contract.LogWarn("Failed to watch directory "+path, err)
		}
		return nil
	})
}

// handleEvent records relevant create and write events.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	if w.gitDir != "" {
		if rel, err := contract.ToSlashRel(w.gitDir, event.Name); err == nil {
			w.handleGitEvent(event, rel)
			return
		}
	}

	rel, err := contract.ToSlashRel(w.root, event.Name)
	if err != nil || hasHiddenSegment(rel) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			// New folders need their own watch; files inside show up as later events
			_ = w.addWatchDirs(event.Name)
			return
		}
	}

	if !contract.HasExtension(rel, w.extensions) {
		return
	}
	w.record(rel, time.Now())
	contract.LogDebug("file changed", "path", rel, "op", event.Op.String())
}

// handleGitEvent records moves of HEAD or any ref. Git writes refs through a
// ".lock" file renamed into place, so the final name shows up as a create.
func (w *Watcher) handleGitEvent(event fsnotify.Event, rel string) {
	if !isRefPath(rel) {
		return
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = filepath.WalkDir(event.Name, func(path string, d os.DirEntry, err error) error {
				if err == nil && d.IsDir() {
					_ = w.watcher.Add(path)
				}
				return nil
			})
			return
		}
	}
	w.record(".git/"+rel, time.Now())
	contract.LogDebug("git ref changed", "ref", rel, "op", event.Op.String())
}

func (w *Watcher) record(rel string, at time.Time) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	w.pending[rel] = at
}

// processDebounced flushes settled changes until ctx is cancelled.
func (w *Watcher) processDebounced(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if paths := w.settled(now); len(paths) > 0 && w.onChange != nil {
				w.onChange(ctx, paths)
			}
		}
	}
}

// settled returns the batch once the most recent change is older than the debounce window.
// Changes keep accumulating while edits are still arriving.
func (w *Watcher) settled(now time.Time) []string {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	if len(w.pending) == 0 {
		return nil
	}
	var latest time.Time
	for _, at := range w.pending {
		if at.After(latest) {
			latest = at
		}
	}
	if now.Sub(latest) < w.debounce {
		return nil
	}

	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	clear(w.pending)
	slices.Sort(paths)
	return paths
}

// isRefPath reports whether a path relative to the git directory names HEAD or a ref.
func isRefPath(rel string) bool {
	if strings.HasSuffix(rel, ".lock") {
		return false
	}
	return rel == "HEAD" || rel == "packed-refs" || strings.HasPrefix(rel, "refs/")
}

func hasHiddenSegment(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
