package cmd

import (
	"github.com/kennelops/musher/core"
	"github.com/kennelops/musher/internal/contract"
	"github.com/spf13/cobra"
)

// rulesCmd displays the active rule settings.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Display the active rule thresholds and fatigue weights",
	Long: `Show the thresholds and weights the rule engine and team builder run with.

Displays every tunable setting with its active value, including any
overrides from the config file or environment.

Settings are read from the "rules" section of the config file, e.g.:

  rules:
    max_work_streak: 5
    max_rolling_7d: 150

Examples:
  # Show active settings
  musher rules

  # Check how a config file changes them
  musher rules --config .musher.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRules(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display rules", err)
		}
	},
}
