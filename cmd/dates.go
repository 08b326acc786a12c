package cmd

import (
	"github.com/huangsam/streak/core"
	"github.com/huangsam/streak/internal/contract"
	"github.com/spf13/cobra"
)

// datesCmd lists the active days behind the streak.
var datesCmd = &cobra.Command{
	Use:   "dates [root-path]",
	Short: "List the days with file activity, newest first.",
	Long: `List every calendar day on which in-scope files were created or modified,
with the number of files touched that day.

Useful for:
- Seeing where a streak was broken
- Exporting writing activity for charts or notebooks

Parquet output requires --output-file.

Examples:
  # Active days for the Journal folder
  streak dates --folder-path Journal

  # Export for analysis in pandas/DuckDB
  streak dates --output parquet --output-file activity.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDates(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot list active dates", err)
		}
	},
}
