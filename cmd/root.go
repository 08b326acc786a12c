package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/streak/internal/contract"
	"github.com/huangsam/streak/internal/iocache"
	"github.com/huangsam/streak/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// cacheManager is the global persistence manager instance.
var cacheManager contract.CacheManager

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "streak",
	Short:              "Track your writing streak from file activity.",
	Long:               `Streak counts the consecutive days, ending today or yesterday, on which you created or modified files in a folder.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".streak")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("STREAK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Set defaults in Viper
	viper.SetDefault("source", contract.DefaultSourceValue)
	viper.SetDefault("ext", contract.DefaultExtensions)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("settings-backend", schema.SQLiteBackend)
	viper.SetDefault("settings-db-connect", "")
	viper.SetDefault("cache-backend", schema.SQLiteBackend)
	viper.SetDefault("cache-db-connect", "")
	viper.SetDefault("color", "yes")
	viper.SetDefault("min", contract.DefaultMinStreak)
	viper.SetDefault("debounce", contract.DefaultDebounce.String())
}

// sharedSetup unmarshals config, runs validation, opens the stores and
// resolves the effective settings for this run.
func sharedSetup(ctx context.Context, cmd *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.RootPathStr = args[0]
	} else {
		input.RootPathStr = "."
	}
	// An empty --folder-path is only distinguishable from "not given" through the flag set.
	input.FolderPathSet = cmd.Flags().Changed("folder-path")

	// 4. Run all validation and complex parsing.
	client := contract.NewLocalGitClient()
	if err := contract.ProcessAndValidate(ctx, cfg, client, input); err != nil {
		return err
	}
	contract.ConfigureLogging(os.Stderr, cfg.Verbose)

	// 5. Initialize persistence layer with validated config
	if err := iocache.InitStores(cfg.SettingsBackend, cfg.SettingsDBConnect, cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}

	// 6. Overlay explicit flags on the persisted settings record.
	stored := schema.DefaultSettings()
	if store := cacheManager.GetSettingsStore(); store != nil {
		loaded, err := store.Load()
		if err != nil {
			// A broken settings store must not block the streak itself.
			contract.LogWarn("Failed to load settings, using defaults", err)
		} else {
			stored = loaded
		}
	}
	effective, err := contract.ResolveSettings(stored, input)
	if err != nil {
		return err
	}
	cfg.Settings = effective
	contract.LogDebug("resolved settings", "root", cfg.RootPath, "folder", cfg.Settings.FolderPath, "grace", cfg.Settings.OneDayGrace)

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".streak")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetCacheManager sets the global cache manager.
func SetCacheManager(mgr contract.CacheManager) {
	cacheManager = mgr
}
