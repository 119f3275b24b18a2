package cmd

import (
	"github.com/kennelops/musher/core"
	"github.com/kennelops/musher/internal/contract"
	"github.com/spf13/cobra"
)

// indicatorsCmd computes per-dog workload indicators.
var indicatorsCmd = &cobra.Command{
	Use:   "indicators",
	Short: "Show workload indicators for every dog on the roster.",
	Long: `Compute workload indicators from the recorded work history.

For each dog, derives the signals used by the alerting rules:
- Work streak: consecutive worked days ending at the as-of date
- Rest streak: consecutive rest days ending at the as-of date
- Work share: fraction of the trailing window spent working
- Rolling 7d: total distance covered over the trailing seven days

Dogs with no recorded history still appear, with zeroed indicators
and an undefined work share.

Examples:
  # Indicators for the whole roster as of today
  musher indicators

  # Indicators for one dog on a specific date
  musher indicators --dog balto --date 2026-02-10

  # Export indicators for downstream analysis
  musher indicators --output parquet --output-file indicators.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteIndicators(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot compute indicators", err)
		}
	},
}
