package outwriter

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// ErrParquetUnsupported is returned when a report has no tabular Parquet form.
var ErrParquetUnsupported = errors.New("parquet output is only supported by the dates command")

// PrintStreakReport outputs a streak report, dispatching based on the output format configured.
func PrintStreakReport(report schema.StreakReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONStreakReport(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVStreakReport(w, report)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return ErrParquetUnsupported
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteStreakTable(w, report, cfg)
		}, "Wrote table"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// WriteStreakTable renders the report as a two-column table followed by the status line.
func WriteStreakTable(w io.Writer, report schema.StreakReport, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignLeft
	})

	anchor := report.Anchor
	if anchor == "" {
		anchor = "-"
	}
	grace := "off"
	if report.OneDayGrace {
		grace = "on"
	}

	data := [][]string{
		{"Streak", strconv.Itoa(report.Streak)},
		{"Label", streakLabel(report.Streak, cfg.UseColors)},
		{"Anchor", anchor},
		{"Active Days", strconv.Itoa(report.ActiveDays)},
		{"Files In Scope", fmt.Sprintf("%d of %d", report.FilesInScope, report.FilesScanned)},
		{"One-Day Grace", grace},
	}
	if report.Skipped > 0 {
		data = append(data, []string{"Skipped", strconv.Itoa(report.Skipped)})
	}
	if report.Failed() {
		data = append(data, []string{"Error", report.Error})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	scope := contract.TruncatePath(schema.DescribeScope(report.Scope), GetMaxTableScopeWidth(cfg))
	_, _ = fmt.Fprintln(w, report.Display)
	_, _ = fmt.Fprintf(w, "Monitoring: %s\n", scope)
	return nil
}
