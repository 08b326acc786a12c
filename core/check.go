package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/schema"
)

// ErrCheckFailed is returned when the streak is below the required minimum.
var ErrCheckFailed = errors.New("streak below minimum")

// EvaluateCheck compares a report against the minimum streak.
func EvaluateCheck(report schema.StreakReport, minStreak int) schema.CheckResult {
	return schema.CheckResult{
		Streak:    report.Streak,
		MinStreak: minStreak,
		Passed:    !report.Failed() && report.Streak >= minStreak,
		Display:   report.Display,
		Scope:     report.Scope,
	}
}

// ExecuteCheck runs the check command for cron or CI gating.
// It returns ErrCheckFailed when the streak is below cfg.MinStreak.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	report, err := GetStreakReport(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if report.Failed() {
		return fmt.Errorf("failed to compute streak: %w", report.Err)
	}

	result := EvaluateCheck(report, cfg.MinStreak)
	printCheckResult(os.Stdout, result)
	if !result.Passed {
		return ErrCheckFailed
	}
	return nil
}

// printCheckResult prints the check result in a concise format suitable for scripts.
func printCheckResult(w io.Writer, result schema.CheckResult) {
	_, _ = fmt.Fprintln(w, "Streak Check Results:")
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", "Monitoring:", schema.DescribeScope(result.Scope))
	_, _ = fmt.Fprintf(w, "  %-12s %d\n", "Minimum:", result.MinStreak)
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", "Current:", result.Display)
	_, _ = fmt.Fprintln(w)

	if result.Passed {
		_, _ = fmt.Fprintln(w, "✅ Streak meets the minimum")
		return
	}
	_, _ = fmt.Fprintf(w, "❌ Streak is %d day(s) short\n", result.MinStreak-result.Streak)
}
