package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/schema"
)

// writeJSONStreakReport marshals the report with its plain label and writes it.
func writeJSONStreakReport(w io.Writer, report schema.StreakReport) error {
	type JSONStreakReport struct {
		Label      string `json:"label"`
		Monitoring string `json:"monitoring"`
		schema.StreakReport
	}
	return writeJSON(w, JSONStreakReport{
		Label:        contract.GetPlainLabel(report.Streak),
		Monitoring:   schema.DescribeScope(report.Scope),
		StreakReport: report,
	})
}

// writeCSVStreakReport writes the report as a single CSV record.
func writeCSVStreakReport(w io.Writer, report schema.StreakReport) error {
	header := []string{
		"streak",
		"label",
		"anchor",
		"active_days",
		"files_scanned",
		"files_in_scope",
		"skipped",
		"scope",
		"one_day_grace",
		"display",
		"computed_at",
		"error",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		row := []string{
			strconv.Itoa(report.Streak),
			contract.GetPlainLabel(report.Streak),
			report.Anchor,
			strconv.Itoa(report.ActiveDays),
			strconv.Itoa(report.FilesScanned),
			strconv.Itoa(report.FilesInScope),
			strconv.Itoa(report.Skipped),
			report.Scope,
			strconv.FormatBool(report.OneDayGrace),
			report.Display,
			report.ComputedAt.Format(time.RFC3339),
			report.Error,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
		return nil
	})
}
