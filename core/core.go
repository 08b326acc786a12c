package core

import (
	"context"
	"time"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/internal/filestore"
	"github.com/huangsam/streak/internal/outwriter"
	"github.com/huangsam/streak/schema"
)

// ExecutorFunc defines the function signature for executing the streak commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// nowFunc is the clock used by the command entry points.
var nowFunc = time.Now

// newRefresher builds the configured file store and wraps it in a Refresher.
func newRefresher(cfg *contract.Config, mgr contract.CacheManager) (*Refresher, error) {
	store, err := filestore.New(cfg, contract.NewLocalGitClient(), mgr)
	if err != nil {
		return nil, err
	}
	return NewRefresher(store, RefreshOptions{
		Extensions:     cfg.Extensions,
		SkipUnreadable: cfg.SkipUnreadable,
	}), nil
}

// GetStreakReport computes the current streak for cfg without printing it.
func GetStreakReport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.StreakReport, error) {
	rf, err := newRefresher(cfg, mgr)
	if err != nil {
		return schema.StreakReport{}, err
	}
	return rf.Refresh(ctx, cfg.Settings, nowFunc()), nil
}

// GetActiveDates lists per-day activity for cfg without printing it.
func GetActiveDates(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.DailyActivity, error) {
	rf, err := newRefresher(cfg, mgr)
	if err != nil {
		return nil, err
	}
	now := nowFunc()
	return rf.Activity(ctx, cfg.Settings, now.Location())
}

// ExecuteShow computes the streak and prints it.
// It serves as the main entry point for the 'show' command.
func ExecuteShow(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	report, err := GetStreakReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteStreak(report, cfg)
}

// ExecuteDates lists the active days and prints them.
// It serves as the main entry point for the 'dates' command.
func ExecuteDates(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	days, err := GetActiveDates(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteDates(days, cfg)
}
