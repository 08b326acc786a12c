package outwriter

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/internal/parquet"
	"github.com/huangsam/streak/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// maxBarWidth caps the activity bar in the dates table.
const maxBarWidth = 30

// PrintActiveDates outputs the per-day activity listing, dispatching based on the output format configured.
func PrintActiveDates(days []schema.DailyActivity, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, days)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVActiveDates(w, days)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("parquet output requires --output-file")
		}
		rows := parquet.ConvertDailyActivity(days, time.Local)
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteActiveDays(w, rows)
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteDatesTable(w, days)
		}, "Wrote table"); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// WriteDatesTable renders the listing newest first with a proportional activity bar.
func WriteDatesTable(w io.Writer, days []schema.DailyActivity) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Date", "Files", "Activity"})
	table.Configure(func(c *tablewriter.Config) {
		c.Row.Alignment.Global = tw.AlignRight
	})

	peak := 0
	for _, d := range days {
		peak = max(peak, d.Files)
	}

	data := make([][]string, 0, len(days))
	for _, d := range days {
		data = append(data, []string{d.Date, strconv.Itoa(d.Files), activityBar(d.Files, peak)})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Showing %d active days\n", len(days))
	return nil
}

// activityBar scales n against peak into a bar of at most maxBarWidth cells.
func activityBar(n, peak int) string {
	if peak <= 0 || n <= 0 {
		return ""
	}
	width := max(n*maxBarWidth/peak, 1)
	return strings.Repeat("█", width)
}
