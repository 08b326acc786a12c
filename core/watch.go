package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/internal/filestore"
	"github.com/huangsam/streak/internal/watch"
	"github.com/huangsam/streak/schema"
)

// ExecuteWatch prints the streak, then recomputes it whenever files are created or modified.
// It blocks until ctx is cancelled.
func ExecuteWatch(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	client := contract.NewLocalGitClient()
	store, err := filestore.New(cfg, client, mgr)
	if err != nil {
		return err
	}
	rf := NewRefresher(store, RefreshOptions{
		Extensions:     cfg.Extensions,
		SkipUnreadable: cfg.SkipUnreadable,
	})

	_, _ = fmt.Fprintf(os.Stdout, "Monitoring: %s (press Ctrl+C to stop)\n", schema.DescribeScope(cfg.Settings.FolderPath))
	printWatchLine(os.Stdout, rf.Refresh(ctx, cfg.Settings, nowFunc()))

	wcfg, err := watchConfig(ctx, cfg, client, watchHandler(os.Stdout, rf, store, cfg.Settings))
	if err != nil {
		return err
	}
	w, err := watch.New(wcfg)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	return w.Watch(ctx)
}

// watchConfig builds the watcher settings. Git-derived timestamps only move
// when a commit lands, so the git source also watches HEAD and the refs.
func watchConfig(ctx context.Context, cfg *contract.Config, client contract.GitClient, onChange watch.ChangeFunc) (watch.Config, error) {
	wcfg := watch.Config{
		Root:       cfg.RootPath,
		Extensions: cfg.Extensions,
		Debounce:   cfg.Debounce,
		OnChange:   onChange,
	}
	if cfg.Source != schema.GitSource {
		return wcfg, nil
	}
	out, err := client.Run(ctx, cfg.RootPath, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return wcfg, fmt.Errorf("failed to locate git directory: %w", err)
	}
	wcfg.GitDir = strings.TrimSpace(string(out))
	return wcfg, nil
}

// watchHandler refreshes on every settled batch of changes and prints the latest result.
func watchHandler(out io.Writer, rf *Refresher, store contract.FileStore, settings schema.Settings) watch.ChangeFunc {
	return func(ctx context.Context, paths []string) {
		contract.LogDebug("refreshing after changes", "files", len(paths))
		if gs, ok := store.(*filestore.GitStore); ok {
			gs.Invalidate()
		}
		rf.Refresh(ctx, settings, nowFunc())
		if latest, ok := rf.Latest(); ok {
			printWatchLine(out, latest)
		}
	}
}

func printWatchLine(w io.Writer, report schema.StreakReport) {
	_, _ = fmt.Fprintf(w, "[%s] %s\n", report.ComputedAt.Format("15:04:05"), report.Display)
}
