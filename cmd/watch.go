package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/streak/core"
	"github.com/huangsam/streak/internal/contract"
	"github.com/spf13/cobra"
)

// watchCmd keeps the streak up to date while files change.
var watchCmd = &cobra.Command{
	Use:   "watch [root-path]",
	Short: "Recompute the streak whenever files are created or modified",
	Long: `Print the streak, then watch the root folder and print it again after every
settled batch of file creations or modifications.

Deleting files never triggers a recompute.

Examples:
  # Keep a terminal pane showing the streak
  streak watch ~/notes --folder-path Journal

  # Wait two seconds of quiet before recomputing
  streak watch --debounce 2s`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := core.ExecuteWatch(ctx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot watch for changes", err)
		}
	},
}
