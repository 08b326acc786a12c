package outwriter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/internal/parquet"
	"github.com/huangsam/streak/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleDays = []schema.DailyActivity{
	{Date: "2024-06-15", Files: 4},
	{Date: "2024-06-14", Files: 1},
}

func TestWriteDatesTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDatesTable(&buf, sampleDays))

	output := buf.String()
	assert.Contains(t, output, "2024-06-15")
	assert.Contains(t, output, "2024-06-14")
	assert.Contains(t, output, strings.Repeat("█", maxBarWidth))
	assert.Contains(t, output, "Showing 2 active days")
}

func TestActivityBar(t *testing.T) {
	assert.Equal(t, "", activityBar(0, 5))
	assert.Equal(t, "", activityBar(3, 0))
	assert.Equal(t, "█", activityBar(1, 1000))
	assert.Equal(t, strings.Repeat("█", maxBarWidth), activityBar(5, 5))
}

func TestWriteCSVActiveDates(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSVActiveDates(&buf, sampleDays))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"date", "files"}, {"2024-06-15", "4"}, {"2024-06-14", "1"}}, records)
}

func TestPrintActiveDates_Parquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "days.parquet")
	cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: path}
	require.NoError(t, PrintActiveDates(sampleDays, cfg))

	rows, err := parquet.ReadActiveDays(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-06-15", rows[0].Date)
	assert.Equal(t, int32(4), rows[0].Files)
}

func TestPrintActiveDates_ParquetNeedsFile(t *testing.T) {
	err := PrintActiveDates(sampleDays, &contract.Config{Output: schema.ParquetOut})
	assert.Error(t, err)
}

func TestPrintActiveDates_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "days.csv")
	require.NoError(t, PrintActiveDates(sampleDays, &contract.Config{Output: schema.CSVOut, OutputFile: path}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "date,files\n"))
}

func TestWriteSettings(t *testing.T) {
	settings := schema.Settings{FolderPath: "Journal", OneDayGrace: true}

	var buf bytes.Buffer
	require.NoError(t, WriteSettings(&buf, settings, &contract.Config{SettingsBackend: schema.SQLiteBackend}))
	output := buf.String()
	assert.Contains(t, output, "folder-path")
	assert.Contains(t, output, "Journal")
	assert.Contains(t, output, "true")
	assert.Contains(t, output, "Monitoring: Journal")
	assert.Contains(t, output, "Settings backend: sqlite")

	buf.Reset()
	require.NoError(t, WriteSettings(&buf, settings, &contract.Config{Output: schema.JSONOut}))
	assert.Contains(t, buf.String(), `"folder_path": "Journal"`)
	assert.Contains(t, buf.String(), `"one_day_grace": true`)
}
