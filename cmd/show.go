package cmd

import (
	"github.com/huangsam/streak/core"
	"github.com/huangsam/streak/internal/contract"
	"github.com/spf13/cobra"
)

// showCmd computes and prints the current streak.
var showCmd = &cobra.Command{
	Use:   "show [root-path]",
	Short: "Show the current writing streak.",
	Long: `Compute the current writing streak for a folder of notes.

A day counts as active when any in-scope file was created or modified on it.
The streak ends today when today is active, otherwise yesterday, and walks
back one calendar day at a time until a day is missing.

With one-day grace, a single missing day is bridged when the day before it
was active. Two missing days in a row always end the streak.

The streak is recomputed from file timestamps on every run.

Examples:
  # Streak for every markdown file under the current directory
  streak show

  # Only count the Journal folder, with one-day grace
  streak show ~/notes --folder-path Journal --one-day-grace yes

  # Use commit history instead of file system times
  streak show --source git

  # Machine-readable output
  streak show --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteShow(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot show streak", err)
		}
	},
}
