// Package schema has the data types shared across streak packages.
package schema

import "time"

// FileTimestamps is the (created, modified) instant pair for one in-scope file.
type FileTimestamps struct {
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// ActiveDateSet holds deduplicated calendar-day labels (YYYY-MM-DD).
type ActiveDateSet map[string]struct{}

// Has reports whether the label is in the set.
func (s ActiveDateSet) Has(label string) bool {
	_, ok := s[label]
	return ok
}

// Add inserts a label into the set.
func (s ActiveDateSet) Add(label string) {
	s[label] = struct{}{}
}

// Settings is the persisted configuration record.
type Settings struct {
	FolderPath      string `json:"folder_path" mapstructure:"folder-path"`
	StreakStartDate string `json:"streak_start_date" mapstructure:"streak-start-date"` // reserved, never read by the calculator
	OneDayGrace     bool   `json:"one_day_grace" mapstructure:"one-day-grace"`
}

// DefaultSettings returns the record used when nothing has been saved yet.
func DefaultSettings() Settings {
	return Settings{FolderPath: "", StreakStartDate: "", OneDayGrace: false}
}

// StreakReport is the outcome of one refresh, ready for rendering.
type StreakReport struct {
	Streak       int       `json:"streak"`
	Anchor       string    `json:"anchor,omitempty"`
	ActiveDays   int       `json:"active_days"`
	FilesScanned int       `json:"files_scanned"`
	FilesInScope int       `json:"files_in_scope"`
	Skipped      int       `json:"skipped"`
	Scope        string    `json:"scope"`
	OneDayGrace  bool      `json:"one_day_grace"`
	Display      string    `json:"display"`
	ComputedAt   time.Time `json:"computed_at"`
	Err          error     `json:"-"`
	Error        string    `json:"error,omitempty"`
}

// Failed reports whether the refresh hit an unexpected error.
func (r StreakReport) Failed() bool {
	return r.Err != nil
}

// DailyActivity counts in-scope files touching a single calendar day.
type DailyActivity struct {
	Date  string `json:"date"`
	Files int    `json:"files"`
}

// CheckResult is the outcome of gating on a minimum streak.
type CheckResult struct {
	Streak    int    `json:"streak"`
	MinStreak int    `json:"min_streak"`
	Passed    bool   `json:"passed"`
	Display   string `json:"display"`
	Scope     string `json:"scope"`
}
