package schema

import "time"

// CacheStatus represents the status of the activity cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// SettingsStatus represents the status of the settings store.
type SettingsStatus struct {
	Backend     string    `json:"backend"`
	Connected   bool      `json:"connected"`
	HasRecord   bool      `json:"has_record"`
	LastUpdated time.Time `json:"last_updated"`
}
