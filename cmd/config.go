package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/streak/core"
	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/internal/iocache"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settingsSetup loads minimal configuration needed for settings store maintenance.
// When open is false the store is not initialized, so migrations can run on a fresh database.
func settingsSetup(open bool) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := backendFromViper("settings-backend", "settings-db-connect")
	if err != nil {
		return err
	}

	if open {
		if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
			return fmt.Errorf("failed to initialize settings: %w", err)
		}
	}

	cfg.SettingsBackend = backend
	cfg.SettingsDBConnect = connStr

	return nil
}

// configCmd focused on the persisted settings record.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit the saved streak settings",
	Long: `Manage the saved settings record used by every streak command.

Settings:
  folder-path        Only count files under this folder (empty = all files)
  one-day-grace      Bridge a single missing day (yes/no)
  streak-start-date  Reserved (YYYY-MM-DD), not used by the calculation

Flags such as --folder-path override the saved values for a single run.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (in memory only)

Subcommands:
  show    - Print the saved settings
  set     - Change one setting and recompute the streak
  status  - Show settings store connection details
  clear   - Forget the saved settings
  migrate - Run database schema migrations`,
}

// configShowCmd prints the saved settings.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved settings",
	Long: `Print the saved settings record.

Examples:
  streak config show
  streak config show --output json`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return sharedSetup(rootCtx, cmd, nil)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteConfigShow(os.Stdout, cfg, cacheManager.GetSettingsStore()); err != nil {
			contract.LogFatal("Failed to show settings", err)
		}
	},
}

// configSetCmd edits one setting, saves it and recomputes the streak.
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and recompute the streak",
	Long: `Save a new value for one setting, then print the streak under the new settings.

Examples:
  # Monitor the Journal folder
  streak config set folder-path Journal

  # Monitor everything again
  streak config set folder-path ""

  # Enable one-day grace
  streak config set one-day-grace yes`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return sharedSetup(rootCtx, cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteConfigSet(rootCtx, os.Stdout, cfg, cacheManager, args[0], args[1]); err != nil {
			contract.LogFatal("Failed to save setting", err)
		}
	},
}

// configStatusCmd shows settings store status.
var configStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display settings store connection details",
	Long: `Show the settings backend, its connection status and when the record was last saved.

Examples:
  streak config status`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return settingsSetup(true)
	},
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetSettingsStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get settings status", err)
		}
		iocache.PrintSettingsStatus(os.Stdout, status)
	},
}

// configClearCmd forgets the saved settings.
var configClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget the saved settings",
	Long: `Delete the saved settings record so every command falls back to the defaults.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the settings and migration tables

Examples:
  streak config clear`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return settingsSetup(false)
	},
	Run: func(_ *cobra.Command, _ []string) {
		dbFile := sqliteFile(cfg.SettingsDBConnect, contract.GetSettingsDBFilePath())
		if err := iocache.ClearSettings(cfg.SettingsBackend, dbFile, cfg.SettingsDBConnect); err != nil {
			contract.LogFatal("Failed to clear settings", err)
		}
		fmt.Println("Settings cleared successfully.")
	},
}

// configMigrateCmd runs database migrations for the settings store.
var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the settings store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  streak config migrate

  # Rollback to initial state
  streak config migrate --target-version 0`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return settingsSetup(false)
	},
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateSettings(os.Stdout, cfg.SettingsBackend, cfg.SettingsDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
