// Package cmd defines the command-line interface for streak.
package cmd

import (
	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(datesCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the config subcommands to the parent config command
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configStatusCmd)
	configCmd.AddCommand(configClearCmd)
	configCmd.AddCommand(configMigrateCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("source", contract.DefaultSourceValue, "Where file timestamps come from: fs or git")
	rootCmd.PersistentFlags().StringP("folder-path", "f", "", "Only count files under this folder (overrides the saved setting)")
	rootCmd.PersistentFlags().Bool("root-only", false, "Only count files directly in the root folder")
	rootCmd.PersistentFlags().String("one-day-grace", "", "Bridge a single missing day (yes/no/true/false/1/0, overrides the saved setting)")
	rootCmd.PersistentFlags().String("ext", contract.DefaultExtensions, "Comma-separated file extensions to count (empty = all files)")
	rootCmd.PersistentFlags().Bool("skip-unreadable", false, "Skip files whose timestamps cannot be read instead of reporting 0")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("settings-backend", string(schema.SQLiteBackend), "Settings backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("settings-db-connect", "", "Database connection string for the settings store")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().Int("min", contract.DefaultMinStreak, "Minimum streak in days required to pass")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of watchCmd to Viper
	watchCmd.Flags().String("debounce", contract.DefaultDebounce.String(), "Quiet period before recomputing after a change")
	if err := viper.BindPFlags(watchCmd.Flags()); err != nil {
		contract.LogFatal("Error binding watch flags", err)
	}

	// Bind all flags of configMigrateCmd to Viper
	configMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(configMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding config migrate flags", err)
	}
}
