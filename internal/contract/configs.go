package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/streak/schema"
)

// Default values for configuration.
const (
	DefaultDebounce    = 500 * time.Millisecond
	DefaultExtensions  = ".md"
	DefaultMinStreak   = 1
	MaxDebounce        = time.Minute
	DefaultSourceValue = string(schema.FSSource)
)

// Config holds the runtime configuration for a streak computation.
// This struct is the "final, validated" config.
type Config struct {
	RootPath       string
	Source         schema.SourceKind
	Extensions     []string
	SkipUnreadable bool
	Output         schema.OutputMode
	OutputFile     string
	Width          int // Terminal width override (0 = auto-detect)
	MinStreak      int
	Debounce       time.Duration

	// Settings is the effective record: the persisted one overlaid with flags.
	Settings schema.Settings

	SettingsBackend   schema.DatabaseBackend
	SettingsDBConnect string // Please use env var as this is plaintext

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	UseColors bool
	Verbose   bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RootPathStr string

	// FolderPathSet is true when --folder-path was given on the command line,
	// even as "". It is set manually from the parsed flags.
	FolderPathSet bool `mapstructure:"-"`

	// --- Fields from rootCmd.PersistentFlags() ---
	Source            string `mapstructure:"source"`
	FolderPath        string `mapstructure:"folder-path"`
	RootOnly          bool   `mapstructure:"root-only"`
	OneDayGrace       string `mapstructure:"one-day-grace"`
	Ext               string `mapstructure:"ext"`
	SkipUnreadable    bool   `mapstructure:"skip-unreadable"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	Width             int    `mapstructure:"width"`
	SettingsBackend   string `mapstructure:"settings-backend"`
	SettingsDBConnect string `mapstructure:"settings-db-connect"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	Color             string `mapstructure:"color"`
	Verbose           bool   `mapstructure:"verbose"`

	// --- Fields from checkCmd.Flags() ---
	MinStreak int `mapstructure:"min"`

	// --- Fields from watchCmd.Flags() ---
	Debounce string `mapstructure:"debounce"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Extensions != nil {
		clone.Extensions = slices.Clone(c.Extensions)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Settings are resolved separately by
// ResolveSettings once the settings store is available.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := resolveRootPath(ctx, cfg, client, input); err != nil {
		return err
	}
	return nil
}

// ResolveSettings overlays explicit flags on top of the persisted settings record.
// The stored record itself is not modified.
func ResolveSettings(stored schema.Settings, input *ConfigRawInput) (schema.Settings, error) {
	effective := stored
	if folder := strings.TrimSpace(input.FolderPath); folder != "" || input.FolderPathSet {
		// An explicit empty flag widens this run back to every file.
		effective.FolderPath = folder
	}
	if input.RootOnly {
		// A scope that normalizes to empty means "root folder only".
		effective.FolderPath = "/"
	}
	if input.OneDayGrace != "" {
		grace, err := ParseBoolString(input.OneDayGrace)
		if err != nil {
			return stored, fmt.Errorf("invalid --one-day-grace value: %w", err)
		}
		effective.OneDayGrace = grace
	}
	return effective, nil
}

// ApplySettingChange validates and applies a single "key=value" edit to a settings record.
func ApplySettingChange(settings schema.Settings, key, value string) (schema.Settings, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "folder-path", "folder_path", "folderpath":
		settings.FolderPath = strings.TrimSpace(value)
	case "one-day-grace", "one_day_grace", "onedaygrace":
		grace, err := ParseBoolString(value)
		if err != nil {
			return settings, err
		}
		settings.OneDayGrace = grace
	case "streak-start-date", "streak_start_date", "streakstartdate":
		value = strings.TrimSpace(value)
		if value != "" {
			if _, err := time.Parse(schema.DateLayout, value); err != nil {
				return settings, fmt.Errorf("streak-start-date must be YYYY-MM-DD: %w", err)
			}
		}
		settings.StreakStartDate = value
	default:
		return settings, fmt.Errorf("unknown setting %q. must be folder-path, one-day-grace, streak-start-date", key)
	}
	return settings, nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates settings and cache backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.SettingsBackend = schema.DatabaseBackend(strings.ToLower(input.SettingsBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.SettingsBackend]; !ok {
		return fmt.Errorf("invalid settings backend '%s'. must be sqlite, mysql, postgresql, none", input.SettingsBackend)
	}
	cfg.SettingsDBConnect = input.SettingsDBConnect
	if err := ValidateDatabaseConnectionString(cfg.SettingsBackend, cfg.SettingsDBConnect); err != nil {
		return err
	}

	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// Both stores default to SQLite; make sure they don't collide on one file.
	if cfg.SettingsBackend == schema.SQLiteBackend && cfg.CacheBackend == schema.SQLiteBackend {
		settingsPath := cfg.SettingsDBConnect
		if settingsPath == "" {
			settingsPath = GetSettingsDBFilePath()
		}
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		if settingsPath == cachePath {
			return fmt.Errorf("settings and cache storage must use different SQLite database files. Both resolve to %q", settingsPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.SkipUnreadable = input.SkipUnreadable
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Source = schema.SourceKind(strings.ToLower(input.Source))
	if _, ok := schema.ValidSourceKinds[cfg.Source]; !ok {
		return fmt.Errorf("invalid source '%s'. must be fs, git", input.Source)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	cfg.Extensions = ParseExtensions(input.Ext)

	if input.MinStreak < 0 {
		return fmt.Errorf("--min must not be negative (received %d)", input.MinStreak)
	}
	cfg.MinStreak = input.MinStreak

	cfg.Debounce = DefaultDebounce
	if input.Debounce != "" {
		d, err := time.ParseDuration(input.Debounce)
		if err != nil {
			return fmt.Errorf("invalid --debounce value: %w", err)
		}
		if d <= 0 || d > MaxDebounce {
			return fmt.Errorf("--debounce must be between 0 and %s (received %s)", MaxDebounce, d)
		}
		cfg.Debounce = d
	}

	if input.Width < 0 {
		return fmt.Errorf("--width must not be negative (received %d)", input.Width)
	}
	return nil
}

// resolveRootPath turns the positional argument into the absolute corpus root.
// For the git source the root snaps to the repository top level.
func resolveRootPath(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.RootPathStr
	if searchPath == "" {
		searchPath = "."
	}
	absPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absPath = filepath.Clean(absPath)

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("root path %q is not accessible: %w", searchPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path %q is not a directory", searchPath)
	}

	if cfg.Source == schema.GitSource {
		gitRoot, err := client.GetRepoRoot(ctx, absPath)
		if err != nil {
			return err
		}
		cfg.RootPath = gitRoot
		return nil
	}

	cfg.RootPath = absPath
	return nil
}
