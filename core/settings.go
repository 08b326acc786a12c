package core

import (
	"context"
	"fmt"
	"io"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/internal/outwriter"
	"github.com/huangsam/streak/schema"
)

// ExecuteConfigShow prints the persisted settings record.
func ExecuteConfigShow(w io.Writer, cfg *contract.Config, store contract.SettingsStore) error {
	settings, err := store.Load()
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSettings(w, settings, cfg)
}

// ExecuteConfigSet applies one setting edit, writes the record back and
// recomputes the streak under the new settings.
func ExecuteConfigSet(ctx context.Context, w io.Writer, cfg *contract.Config, mgr contract.CacheManager, key, value string) error {
	store := mgr.GetSettingsStore()
	if store == nil {
		return fmt.Errorf("settings store is not initialized")
	}

	stored, err := store.Load()
	if err != nil {
		return err
	}
	updated, err := contract.ApplySettingChange(stored, key, value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := store.Save(updated, nowFunc()); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Saved %s\n", key)

	refreshed := cfg.Clone()
	refreshed.Settings = updated
	report, err := GetStreakReport(ctx, refreshed, mgr)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, report.Display)
	_, _ = fmt.Fprintf(w, "Monitoring: %s\n", schema.DescribeScope(updated.FolderPath))
	return nil
}
