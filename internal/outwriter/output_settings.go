package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteSettings renders the settings record as JSON or a key/value table.
func WriteSettings(w io.Writer, settings schema.Settings, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(w, settings)
	}

	startDate := settings.StreakStartDate
	if startDate == "" {
		startDate = "-"
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Setting", "Value"})
	data := [][]string{
		{"folder-path", settings.FolderPath},
		{"one-day-grace", strconv.FormatBool(settings.OneDayGrace)},
		{"streak-start-date", startDate},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Monitoring: %s\n", schema.DescribeScope(settings.FolderPath))
	_, _ = fmt.Fprintf(w, "Settings backend: %s\n", cfg.SettingsBackend)
	return nil
}
