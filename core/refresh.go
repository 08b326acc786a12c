package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/schema"
)

// MetadataError reports a failed stat for one candidate file.
type MetadataError struct {
	Path string
	Err  error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("cannot read metadata for %s: %v", e.Path, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// RefreshOptions tunes how candidate files are selected and read.
type RefreshOptions struct {
	Extensions     []string // empty means every file
	SkipUnreadable bool     // skip files whose stat fails instead of degrading to 0
}

// Refresher recomputes the streak on demand. Each call builds its own state,
// so overlapping calls are safe; Latest returns the last one to complete.
type Refresher struct {
	store contract.FileStore
	opts  RefreshOptions

	mu     sync.Mutex
	latest schema.StreakReport
	done   bool
}

// NewRefresher creates a Refresher reading from store.
func NewRefresher(store contract.FileStore, opts RefreshOptions) *Refresher {
	return &Refresher{store: store, opts: opts}
}

// Latest returns the most recently completed report, if any.
func (rf *Refresher) Latest() (schema.StreakReport, bool) {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	return rf.latest, rf.done
}

func (rf *Refresher) remember(report schema.StreakReport) {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	rf.latest = report
	rf.done = true
}

// collection is what one pass over the file store produced.
type collection struct {
	scanned    int
	inScope    []string
	timestamps []schema.FileTimestamps
	skipped    int
}

// collect lists candidates, applies the extension and folder filters, and stats survivors.
// A stat failure returns a *MetadataError unless SkipUnreadable is set.
func (rf *Refresher) collect(ctx context.Context, settings schema.Settings) (*collection, error) {
	files, err := rf.store.ListFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate files: %w", err)
	}

	c := &collection{scanned: len(files)}
	for _, f := range files {
		if !contract.HasExtension(f, rf.opts.Extensions) {
			continue
		}
		if !IsInScope(f, settings.FolderPath) {
			continue
		}
		c.inScope = append(c.inScope, f)
	}

	c.timestamps = make([]schema.FileTimestamps, 0, len(c.inScope))
	for _, p := range c.inScope {
		ts, err := rf.store.Stat(ctx, p)
		if err != nil {
			metaErr := &MetadataError{Path: p, Err: err}
			contract.LogWarn("Cannot read file metadata", metaErr)
			if rf.opts.SkipUnreadable {
				c.skipped++
				continue
			}
			return c, metaErr
		}
		c.timestamps = append(c.timestamps, ts)
	}
	return c, nil
}

// Refresh recomputes the streak for settings as of now. It never panics and
// never returns an error to the caller: metadata failures degrade to a streak
// of 0 and unexpected failures are logged and marked on the report.
func (rf *Refresher) Refresh(ctx context.Context, settings schema.Settings, now time.Time) (report schema.StreakReport) {
	report = schema.StreakReport{
		Scope:       settings.FolderPath,
		OneDayGrace: settings.OneDayGrace,
		ComputedAt:  now,
	}

	defer func() {
		if r := recover(); r != nil {
			report = failedReport(report, fmt.Errorf("unexpected failure while computing streak: %v", r))
		}
		if report.Failed() {
			contract.LogWarn("Error updating streak", report.Err)
		}
		rf.remember(report)
	}()

	c, err := rf.collect(ctx, settings)
	var metaErr *MetadataError
	switch {
	case errors.As(err, &metaErr):
		report.FilesScanned = c.scanned
		report.FilesInScope = len(c.inScope)
		report.Display = schema.FormatStreak(0)
		return report
	case err != nil:
		return failedReport(report, err)
	}

	report.FilesScanned = c.scanned
	report.FilesInScope = len(c.inScope)
	report.Skipped = c.skipped

	if len(c.timestamps) > 0 {
		dates := BuildActiveDates(c.timestamps, now.Location())
		anchor := SelectAnchor(dates, now)
		report.ActiveDays = len(dates)
		report.Anchor = anchor.Format(schema.DateLayout)
		report.Streak = CountFrom(dates, anchor, settings.OneDayGrace)
	}
	report.Display = schema.FormatStreak(report.Streak)

	contract.LogDebug("streak refreshed",
		"streak", report.Streak, "in_scope", report.FilesInScope, "active_days", report.ActiveDays)
	return report
}

func failedReport(report schema.StreakReport, err error) schema.StreakReport {
	report.Streak = 0
	report.Err = err
	report.Error = err.Error()
	report.Display = schema.ErrorDisplay
	return report
}

// Activity lists how many in-scope files touched each calendar day, newest first.
// Unlike Refresh, failures are returned to the caller.
func (rf *Refresher) Activity(ctx context.Context, settings schema.Settings, loc *time.Location) ([]schema.DailyActivity, error) {
	c, err := rf.collect(ctx, settings)
	if err != nil {
		return nil, err
	}
	return summarizeActivity(c.timestamps, loc), nil
}

// summarizeActivity counts files per day; a file created and modified on the
// same day counts once for it.
func summarizeActivity(timestamps []schema.FileTimestamps, loc *time.Location) []schema.DailyActivity {
	counts := make(map[string]int)
	for _, ts := range timestamps {
		created := DateLabel(ts.CreatedAt, loc)
		modified := DateLabel(ts.ModifiedAt, loc)
		counts[created]++
		if modified != created {
			counts[modified]++
		}
	}

	days := make([]schema.DailyActivity, 0, len(counts))
	for date, n := range counts {
		days = append(days, schema.DailyActivity{Date: date, Files: n})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })
	return days
}
