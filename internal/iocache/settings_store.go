package iocache

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/schema"
)

const (
	// settingsTable holds the single settings record.
	settingsTable = "streak_settings"

	// settingsKey identifies the record; there is only ever one.
	settingsKey = "default"
)

// SettingsStoreImpl keeps the settings record in a SQL table, or in memory for the none backend.
type SettingsStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend

	mu       sync.Mutex // guards the in-memory record for the none backend
	memory   *schema.Settings
	memoryAt time.Time
}

var _ contract.SettingsStore = &SettingsStoreImpl{} // Compile-time check

// NewSettingsStore opens the settings store for the backend and ensures its table exists.
func NewSettingsStore(backend schema.DatabaseBackend, connStr string) (contract.SettingsStore, error) {
	if backend == schema.NoneBackend {
		return &SettingsStoreImpl{backend: backend}, nil
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return nil, fmt.Errorf("unsupported settings backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	db, err := openDB(backend, connStr, contract.GetSettingsDBFilePath())
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(createSettingsTableQuery); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", settingsTable, err)
	}

	return &SettingsStoreImpl{db: db, backend: backend}, nil
}

// createSettingsTableQuery matches migration 000001 and is portable across all SQL backends.
const createSettingsTableQuery = `
	CREATE TABLE IF NOT EXISTS streak_settings (
		settings_key VARCHAR(64) PRIMARY KEY,
		folder_path TEXT NOT NULL,
		streak_start_date VARCHAR(10) NOT NULL,
		one_day_grace INTEGER NOT NULL,
		updated_at BIGINT NOT NULL
	);
`

// Load returns the saved record, or the defaults when nothing was saved yet.
func (ss *SettingsStoreImpl) Load() (schema.Settings, error) {
	if ss.db == nil {
		ss.mu.Lock()
		defer ss.mu.Unlock()
		if ss.memory == nil {
			return schema.DefaultSettings(), nil
		}
		return *ss.memory, nil
	}

	query := fmt.Sprintf(`SELECT folder_path, streak_start_date, one_day_grace FROM %s WHERE settings_key = %s`,
		quoteTableName(settingsTable, ss.backend), placeholder(ss.backend, 1))

	var settings schema.Settings
	var grace int
	err := ss.db.QueryRow(query, settingsKey).Scan(&settings.FolderPath, &settings.StreakStartDate, &grace)
	if errors.Is(err, sql.ErrNoRows) {
		return schema.DefaultSettings(), nil
	}
	if err != nil {
		return schema.DefaultSettings(), fmt.Errorf("failed to load settings: %w", err)
	}
	settings.OneDayGrace = grace != 0
	return settings, nil
}

// Save upserts the record.
func (ss *SettingsStoreImpl) Save(settings schema.Settings, updatedAt time.Time) error {
	if ss.db == nil {
		ss.mu.Lock()
		defer ss.mu.Unlock()
		saved := settings
		ss.memory = &saved
		ss.memoryAt = updatedAt
		return nil
	}

	grace := 0
	if settings.OneDayGrace {
		grace = 1
	}
	_, err := ss.db.Exec(ss.getUpsertQuery(),
		settingsKey, settings.FolderPath, settings.StreakStartDate, grace, updatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// getUpsertQuery returns the UPSERT query for the backend.
func (ss *SettingsStoreImpl) getUpsertQuery() string {
	quotedTableName := quoteTableName(settingsTable, ss.backend)
	columns := "settings_key, folder_path, streak_start_date, one_day_grace, updated_at"
	switch ss.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE folder_path = new.folder_path, streak_start_date = new.streak_start_date,
			one_day_grace = new.one_day_grace, updated_at = new.updated_at`, quotedTableName, columns)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (settings_key) DO UPDATE SET folder_path = EXCLUDED.folder_path, streak_start_date = EXCLUDED.streak_start_date,
			one_day_grace = EXCLUDED.one_day_grace, updated_at = EXCLUDED.updated_at`, quotedTableName, columns)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (%s) VALUES (?, ?, ?, ?, ?)`, quotedTableName, columns)
	}
}

// GetStatus returns status information about the settings store.
func (ss *SettingsStoreImpl) GetStatus() (schema.SettingsStatus, error) {
	status := schema.SettingsStatus{
		Backend:   string(ss.backend),
		Connected: ss.db != nil,
	}

	if ss.db == nil {
		ss.mu.Lock()
		defer ss.mu.Unlock()
		status.HasRecord = ss.memory != nil
		status.LastUpdated = ss.memoryAt
		return status, nil
	}

	query := fmt.Sprintf(`SELECT updated_at FROM %s WHERE settings_key = %s`,
		quoteTableName(settingsTable, ss.backend), placeholder(ss.backend, 1))
	var updatedAt int64
	err := ss.db.QueryRow(query, settingsKey).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return status, nil
	}
	if err != nil {
		return status, fmt.Errorf("failed to read settings status: %w", err)
	}
	status.HasRecord = true
	status.LastUpdated = time.Unix(updatedAt, 0)
	return status, nil
}

// Close closes the underlying DB connection.
func (ss *SettingsStoreImpl) Close() error {
	if ss.db != nil {
		return ss.db.Close()
	}
	return nil
}
