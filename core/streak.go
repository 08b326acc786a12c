// Package core has the streak calculation and the refresh orchestration around it.
package core

import (
	"time"

	"github.com/huangsam/streak/schema"
)

// MaxWalkDays bounds the backward walk so it terminates regardless of data.
const MaxWalkDays = 100_000

// DateLabel formats an instant as its calendar day in loc.
func DateLabel(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(schema.DateLayout)
}

// startOfDay returns noon of t's calendar day in loc. Some zones shift their
// clocks at midnight, so local midnight may not exist; noon always does.
func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 12, 0, 0, 0, loc)
}

// previousDay steps one calendar day back, rebuilt from the date fields at noon.
func previousDay(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d-1, 12, 0, 0, 0, day.Location())
}

// BuildActiveDates collects the calendar-day labels of every created and modified instant.
func BuildActiveDates(timestamps []schema.FileTimestamps, loc *time.Location) schema.ActiveDateSet {
	dates := make(schema.ActiveDateSet, len(timestamps))
	for _, ts := range timestamps {
		dates.Add(DateLabel(ts.CreatedAt, loc))
		dates.Add(DateLabel(ts.ModifiedAt, loc))
	}
	return dates
}

// SelectAnchor returns today if it is active, otherwise yesterday.
// The result is noon of that day in now's location.
func SelectAnchor(dates schema.ActiveDateSet, now time.Time) time.Time {
	loc := now.Location()
	today := startOfDay(now, loc)
	if dates.Has(today.Format(schema.DateLayout)) {
		return today
	}
	return previousDay(today)
}

// CountFrom walks backward from anchor and counts qualifying days.
//
// Without grace the walk stops at the first missing day. With grace a single
// missing day is skipped when the day before it is active; that earlier day is
// counted and the walk continues. Two consecutive missing days always stop it.
// The skipped day itself never counts, and an inactive anchor is never bridged.
func CountFrom(dates schema.ActiveDateSet, anchor time.Time, oneDayGrace bool) int {
	streak := 0
	day := anchor
	for range MaxWalkDays {
		if dates.Has(day.Format(schema.DateLayout)) {
			streak++
			day = previousDay(day)
			continue
		}
		if !oneDayGrace || streak == 0 {
			break
		}
		earlier := previousDay(day)
		if !dates.Has(earlier.Format(schema.DateLayout)) {
			break
		}
		streak++
		day = previousDay(earlier)
	}
	return streak
}

// ComputeStreak reduces file timestamps to the current streak length.
// Calendar days are taken in now's location.
func ComputeStreak(timestamps []schema.FileTimestamps, oneDayGrace bool, now time.Time) int {
	if len(timestamps) == 0 {
		return 0
	}
	dates := BuildActiveDates(timestamps, now.Location())
	anchor := SelectAnchor(dates, now)
	return CountFrom(dates, anchor, oneDayGrace)
}
