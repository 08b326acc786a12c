package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/streak/schema"
)

// writeCSVActiveDates writes one CSV record per active day.
func writeCSVActiveDates(w io.Writer, days []schema.DailyActivity) error {
	return writeCSVWithHeader(w, []string{"date", "files"}, func(cw *csv.Writer) error {
		for _, d := range days {
			if err := cw.Write([]string{d.Date, strconv.Itoa(d.Files)}); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
