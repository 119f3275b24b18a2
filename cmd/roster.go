package cmd

import (
	"fmt"

	"github.com/kennelops/musher/core"
	"github.com/kennelops/musher/internal/contract"
	"github.com/kennelops/musher/schema"
	"github.com/spf13/cobra"
)

// rosterCmd lists and manages the dogs known to the kennel.
var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List the dogs known to the kennel.",
	Long: `List every dog on the roster with its name, age and team role.

Dogs join the roster when added explicitly, when a record is added for
them, or when they appear in an imported sheet.

Examples:
  # List the roster
  musher roster

  # Machine-readable roster
  musher roster --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRoster(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list roster", err)
		}
	},
}

// rosterAddCmd adds or updates one dog on the roster.
var rosterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a dog to the roster or update its details",
	Long: `Add a dog to the roster, or replace its details if it already exists.

The dog ID comes from the --dog flag; name, age and role are optional.
Re-adding a dog replaces all of its details, so repeat the ones you
want to keep.

Examples:
  # Add a lead dog
  musher roster add --dog balto --name Balto --age 6 --role lead

  # Move it to wheel next season
  musher roster add --dog balto --name Balto --age 7 --role wheel`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		if cfg.DogFilter == "" {
			contract.LogFatal("Cannot add dog", fmt.Errorf("--dog is required"))
		}
		name, _ := cmd.Flags().GetString("name")
		age, _ := cmd.Flags().GetInt("age")
		role, _ := cmd.Flags().GetString("role")
		if name == "" {
			name = cfg.DogFilter
		}

		dog := schema.Dog{ID: cfg.DogFilter, Name: name, Age: age, Role: role}
		if err := storeManager.GetRecordStore().UpsertDog(rootCtx, dog); err != nil {
			contract.LogFatal("Cannot add dog", err)
		}
		fmt.Printf("Saved %s to the roster.\n", dog.ID)
	},
}
