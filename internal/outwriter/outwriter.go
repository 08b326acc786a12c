// Package outwriter renders streak reports, activity listings and settings.
package outwriter

import (
	"io"
	"os"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteStreak prints a streak report using the configured output format.
func (ow *OutWriter) WriteStreak(report schema.StreakReport, cfg *contract.Config) error {
	return PrintStreakReport(report, cfg)
}

// WriteDates prints the per-day activity listing using the configured output format.
func (ow *OutWriter) WriteDates(days []schema.DailyActivity, cfg *contract.Config) error {
	return PrintActiveDates(days, cfg)
}

// WriteSettings prints the effective settings using the configured output format.
func (ow *OutWriter) WriteSettings(w io.Writer, settings schema.Settings, cfg *contract.Config) error {
	return WriteSettings(w, settings, cfg)
}

// GetMaxTableScopeWidth calculates the maximum width for the scope column in
// table output based on terminal width.
func GetMaxTableScopeWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the label column and table borders
	available := termWidth - 30
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}

// streakLabel returns the label for a streak, colored only when requested.
func streakLabel(streak int, useColors bool) string {
	if useColors {
		return contract.GetColorLabel(streak)
	}
	return contract.GetPlainLabel(streak)
}
