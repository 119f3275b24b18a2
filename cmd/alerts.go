package cmd

import (
	"github.com/kennelops/musher/core"
	"github.com/kennelops/musher/internal/contract"
	"github.com/spf13/cobra"
)

// alertsCmd evaluates workload rules and reports violations.
var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show rule violations for the current workload.",
	Long: `Evaluate workload rules against each dog's indicators and report violations.

Rules checked:
- long_work_streak: too many consecutive worked days
- excess_rest: too many consecutive rest days
- overuse_share: work share above the allowed maximum
- underuse_share: work share below the allowed minimum
- overload: rolling 7-day distance above the allowed maximum

Each alert carries a severity (info, warning, critical) based on how far
the observed value overshoots its threshold, plus a one-line explanation.

Thresholds can be tuned in the config file under the "rules" section.

Examples:
  # Alerts for the whole roster as of today
  musher alerts

  # Alerts for one dog on a specific date
  musher alerts --dog togo --date 2026-02-10

  # Export alerts to CSV for tracking
  musher alerts --output csv --output-file alerts.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAlerts(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot evaluate alerts", err)
		}
	},
}
