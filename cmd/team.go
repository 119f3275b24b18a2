package cmd

import (
	"github.com/kennelops/musher/core"
	"github.com/kennelops/musher/internal/contract"
	"github.com/spf13/cobra"
)

// teamCmd selects a team of the freshest dogs.
var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Pick the freshest dogs for the next run.",
	Long: `Select a team for the as-of date, preferring the least fatigued dogs.

Dogs with a blocking alert (overload by default) are held out of the pool,
as are any dogs excluded explicitly. The remaining dogs are ranked by a
fatigue score built from their rolling 7-day load and current work streak,
and the freshest dogs fill the team.

If the pool is smaller than the requested size, the team is returned
underfilled with the reasons spelled out.

Examples:
  # Pick a team of six for today
  musher team

  # Pick a smaller team for a specific date
  musher team --size 4 --date 2026-02-10

  # Hold out injured dogs and show the fatigue math
  musher team --exclude balto,togo --explain`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTeam(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot build team", err)
		}
	},
}
