// Package parquet exports active-day listings to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/streak/schema"
	"github.com/parquet-go/parquet-go"
)

// ActiveDay is one calendar day with activity in the monitored scope.
type ActiveDay struct {
	// Date is the calendar-day label (YYYY-MM-DD)
	Date string `parquet:"date,snappy"`

	// DayStart is midnight of the day in the computation's location
	DayStart time.Time `parquet:"day_start,snappy"`

	// Files is the number of in-scope files created or modified that day
	Files int32 `parquet:"files,snappy"`
}

// ConvertDailyActivity converts schema.DailyActivity to ActiveDay rows.
// Labels that do not parse keep a zero DayStart.
func ConvertDailyActivity(days []schema.DailyActivity, loc *time.Location) []ActiveDay {
	result := make([]ActiveDay, len(days))
	for i, d := range days {
		start, _ := time.ParseInLocation(schema.DateLayout, d.Date, loc)
		result[i] = ActiveDay{
			Date:     d.Date,
			DayStart: start,
			Files:    int32(d.Files),
		}
	}
	return result
}

// WriteActiveDays writes rows as a Parquet file to w.
func WriteActiveDays(w io.Writer, data []ActiveDay) error {
	// The schema is derived from the ActiveDay struct tags
	writer := parquet.NewGenericWriter[ActiveDay](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ReadActiveDays reads every row back from a Parquet file written by WriteActiveDays.
func ReadActiveDays(path string) ([]ActiveDay, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[ActiveDay](file)
	defer func() { _ = reader.Close() }()

	rows := make([]ActiveDay, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}
	return rows[:n], nil
}
