package cmd

import (
	"errors"
	"os"

	"github.com/huangsam/streak/core"
	"github.com/huangsam/streak/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd gates scripts on a minimum streak.
var checkCmd = &cobra.Command{
	Use:   "check [root-path]",
	Short: "Fail with a non-zero exit code when the streak is below a minimum",
	Long: `Compute the streak and compare it against --min.

Designed for cron jobs, shell prompts and CI reminders. Exits 0 when the
streak meets the minimum and 1 otherwise.

Examples:
  # Remind me when today's entry is missing
  streak check --min 1 || notify-send "Write something today"

  # Require a week-long streak in the Journal folder
  streak check --folder-path Journal --min 7`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		err := core.ExecuteCheck(rootCtx, cfg, cacheManager)
		if errors.Is(err, core.ErrCheckFailed) {
			os.Exit(1)
		}
		if err != nil {
			contract.LogFatal("Streak check failed", err)
		}
	},
}
