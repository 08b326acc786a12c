package core

import (
	"testing"
	"time"

	"github.com/huangsam/streak/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is mid-afternoon so small offsets never cross a day boundary.
var fixedNow = time.Date(2024, 6, 15, 15, 30, 0, 0, time.UTC)

// touchedOn returns a timestamp pair created and modified daysAgo days before now.
func touchedOn(now time.Time, daysAgo int) schema.FileTimestamps {
	t := now.AddDate(0, 0, -daysAgo)
	return schema.FileTimestamps{CreatedAt: t, ModifiedAt: t}
}

func touchedDays(now time.Time, daysAgo ...int) []schema.FileTimestamps {
	out := make([]schema.FileTimestamps, 0, len(daysAgo))
	for _, d := range daysAgo {
		out = append(out, touchedOn(now, d))
	}
	return out
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name     string
		days     []int
		grace    bool
		expected int
	}{
		{"unbroken without grace", []int{0, 1, 2}, false, 3},
		{"broken without grace", []int{0, 2}, false, 1},
		{"single gap bridged with grace", []int{0, 2, 3}, true, 3},
		{"double gap stops with grace", []int{0, 3}, true, 1},
		{"anchor falls back to yesterday", []int{1, 2}, false, 2},
		{"today and yesterday missing", []int{2, 3, 4}, false, 0},
		{"today and yesterday missing with grace", []int{2, 3, 4}, true, 0},
		{"only today", []int{0}, false, 1},
		{"only yesterday", []int{1}, true, 1},
		{"grace bridges several isolated gaps", []int{0, 2, 4, 5, 7}, true, 5},
		{"grace stops at first double gap", []int{0, 2, 5, 6}, true, 2},
		{"duplicates count once", []int{0, 0, 1, 1, 1}, false, 2},
		{"grace with gap right after yesterday anchor", []int{1, 3, 4}, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStreak(touchedDays(fixedNow, tt.days...), tt.grace, fixedNow)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestComputeStreak_Empty(t *testing.T) {
	assert.Equal(t, 0, ComputeStreak(nil, false, fixedNow))
	assert.Equal(t, 0, ComputeStreak([]schema.FileTimestamps{}, true, fixedNow))
}

func TestComputeStreak_CreatedAndModifiedBothCount(t *testing.T) {
	ts := []schema.FileTimestamps{
		// created two days ago, edited today; yesterday comes from the second file
		{CreatedAt: fixedNow.AddDate(0, 0, -2), ModifiedAt: fixedNow},
		{CreatedAt: fixedNow.AddDate(0, 0, -1), ModifiedAt: fixedNow.AddDate(0, 0, -1)},
	}
	assert.Equal(t, 3, ComputeStreak(ts, false, fixedNow))
}

func TestComputeStreak_BoundedByDistinctDays(t *testing.T) {
	ts := touchedDays(fixedNow, 0, 1, 2, 4, 5, 9, 10, 11)
	dates := BuildActiveDates(ts, fixedNow.Location())
	for _, grace := range []bool{false, true} {
		got := ComputeStreak(ts, grace, fixedNow)
		assert.LessOrEqual(t, got, len(dates))
		assert.GreaterOrEqual(t, got, 0)
	}
}

func TestComputeStreak_Idempotent(t *testing.T) {
	ts := touchedDays(fixedNow, 0, 2, 3, 4, 6)
	first := ComputeStreak(ts, true, fixedNow)
	second := ComputeStreak(ts, true, fixedNow)
	assert.Equal(t, first, second)
}

func TestComputeStreak_MonotoneUnderAddedTimestamps(t *testing.T) {
	base := touchedDays(fixedNow, 0, 1, 3)
	before := ComputeStreak(base, false, fixedNow)

	// Adding the missing day keeps today active, so the anchor is unchanged.
	extended := append(append([]schema.FileTimestamps{}, base...), touchedOn(fixedNow, 2))
	after := ComputeStreak(extended, false, fixedNow)

	assert.Equal(t, 2, before)
	assert.Equal(t, 4, after)
	assert.GreaterOrEqual(t, after, before)
}

func TestComputeStreak_UsesLocationOfNow(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 20:00 UTC on June 14 is already June 15 in Tokyo.
	ts := []schema.FileTimestamps{{
		CreatedAt:  time.Date(2024, 6, 14, 20, 0, 0, 0, time.UTC),
		ModifiedAt: time.Date(2024, 6, 14, 20, 0, 0, 0, time.UTC),
	}}

	nowUTC := time.Date(2024, 6, 16, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, ComputeStreak(ts, false, nowUTC))

	nowTokyo := nowUTC.In(tokyo)
	assert.Equal(t, 1, ComputeStreak(ts, false, nowTokyo))
}

func TestComputeStreak_AcrossDaylightSavingChange(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// Clocks spring forward on 2024-03-10.
	now := time.Date(2024, 3, 12, 9, 0, 0, 0, loc)
	ts := make([]schema.FileTimestamps, 0, 5)
	for i := range 5 {
		day := time.Date(2024, 3, 12-i, 9, 0, 0, 0, loc)
		ts = append(ts, schema.FileTimestamps{CreatedAt: day, ModifiedAt: day})
	}
	assert.Equal(t, 5, ComputeStreak(ts, false, now))
}

// noonOn returns timestamps at noon local time on each given day of a month.
func noonOn(loc *time.Location, year int, month time.Month, days ...int) []schema.FileTimestamps {
	out := make([]schema.FileTimestamps, 0, len(days))
	for _, d := range days {
		at := time.Date(year, month, d, 12, 0, 0, 0, loc)
		out = append(out, schema.FileTimestamps{CreatedAt: at, ModifiedAt: at})
	}
	return out
}

func TestComputeStreak_MidnightDaylightSavingChange(t *testing.T) {
	// Both zones skip from 00:00 to 01:00, so local midnight does not exist on the change day.
	santiago, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Skip("tzdata not available")
	}
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skip("tzdata not available")
	}

	tests := []struct {
		name     string
		now      time.Time
		ts       []schema.FileTimestamps
		grace    bool
		expected int
	}{
		{
			name:     "santiago unbroken run through change day",
			now:      time.Date(2025, 9, 8, 12, 0, 0, 0, santiago),
			ts:       noonOn(santiago, 2025, 9, 8, 7, 6, 5),
			expected: 4,
		},
		{
			name:     "santiago missing change day stops without grace",
			now:      time.Date(2025, 9, 8, 12, 0, 0, 0, santiago),
			ts:       noonOn(santiago, 2025, 9, 8, 6, 5),
			expected: 1,
		},
		{
			name:     "santiago missing change day bridged with grace",
			now:      time.Date(2025, 9, 8, 12, 0, 0, 0, santiago),
			ts:       noonOn(santiago, 2025, 9, 8, 6, 5),
			grace:    true,
			expected: 3,
		},
		{
			name:     "sao paulo unbroken",
			now:      time.Date(2018, 11, 5, 12, 0, 0, 0, saoPaulo),
			ts:       noonOn(saoPaulo, 2018, 11, 5, 4, 3),
			expected: 3,
		},
		{
			name:     "sao paulo double gap stops with grace",
			now:      time.Date(2018, 11, 5, 12, 0, 0, 0, saoPaulo),
			ts:       noonOn(saoPaulo, 2018, 11, 5, 2),
			grace:    true,
			expected: 1,
		},
		{
			name:     "sao paulo anchor falls back to yesterday",
			now:      time.Date(2018, 11, 6, 12, 0, 0, 0, saoPaulo),
			ts:       noonOn(saoPaulo, 2018, 11, 5, 4),
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeStreak(tt.ts, tt.grace, tt.now))
		})
	}
}

func TestPreviousDay_VisitsEveryLabelAcrossMidnightChange(t *testing.T) {
	loc, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Skip("tzdata not available")
	}
	day := startOfDay(time.Date(2025, 9, 9, 8, 0, 0, 0, loc), loc)
	var labels []string
	for range 4 {
		labels = append(labels, day.Format(schema.DateLayout))
		day = previousDay(day)
	}
	assert.Equal(t, []string{"2025-09-09", "2025-09-08", "2025-09-07", "2025-09-06"}, labels)
}

func TestSelectAnchor(t *testing.T) {
	dates := schema.ActiveDateSet{}
	dates.Add("2024-06-15")
	anchor := SelectAnchor(dates, fixedNow)
	assert.Equal(t, "2024-06-15", anchor.Format(schema.DateLayout))
	assert.Equal(t, 12, anchor.Hour())

	empty := schema.ActiveDateSet{}
	anchor = SelectAnchor(empty, fixedNow)
	assert.Equal(t, "2024-06-14", anchor.Format(schema.DateLayout))
}

func TestBuildActiveDates(t *testing.T) {
	ts := []schema.FileTimestamps{
		{CreatedAt: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), ModifiedAt: time.Date(2024, 1, 3, 8, 0, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2024, 1, 3, 22, 0, 0, 0, time.UTC), ModifiedAt: time.Date(2024, 1, 3, 23, 0, 0, 0, time.UTC)},
	}
	dates := BuildActiveDates(ts, time.UTC)
	require.Len(t, dates, 2)
	assert.True(t, dates.Has("2024-01-01"))
	assert.True(t, dates.Has("2024-01-03"))
	assert.False(t, dates.Has("2024-01-02"))
}

func TestCountFrom_GraceNeverCountsSkippedDay(t *testing.T) {
	dates := schema.ActiveDateSet{}
	for _, d := range []string{"2024-06-15", "2024-06-13"} {
		dates.Add(d)
	}
	anchor := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, CountFrom(dates, anchor, true))
	assert.Equal(t, 1, CountFrom(dates, anchor, false))
}

func TestCountFrom_LongStreak(t *testing.T) {
	dates := schema.ActiveDateSet{}
	anchor := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	for i := range 1000 {
		dates.Add(anchor.AddDate(0, 0, -i).Format(schema.DateLayout))
	}
	assert.Equal(t, 1000, CountFrom(dates, anchor, false))
}
