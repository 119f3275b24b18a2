// Package cmd defines the command-line interface for musher.
package cmd

import (
	"github.com/kennelops/musher/internal/contract"
	"github.com/kennelops/musher/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(indicatorsCmd)
	rootCmd.AddCommand(alertsCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the record subcommands to the parent record command
	recordCmd.AddCommand(recordAddCmd)
	recordCmd.AddCommand(recordImportCmd)
	recordCmd.AddCommand(recordExportCmd)

	// Add the roster subcommands to the parent roster command
	rosterCmd.AddCommand(rosterAddCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("date", "d", "", "As-of date in YYYY-MM-DD format (defaults to today)")
	rootCmd.PersistentFlags().String("dog", "", "Restrict the command to one dog ID")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Record store backend: sqlite or mysql or postgresql or memory")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of teamCmd to Viper
	teamCmd.Flags().IntP("size", "s", contract.DefaultTeamSize, "Requested team size")
	teamCmd.Flags().String("exclude", "", "Comma-separated dog IDs to leave out of selection")
	teamCmd.Flags().Bool("explain", false, "Print per-dog fatigue breakdown")
	if err := viper.BindPFlags(teamCmd.Flags()); err != nil {
		contract.LogFatal("Error binding team flags", err)
	}

	// Record subcommand flags are read directly from Cobra; binding them to
	// Viper would collide on shared names like --file.
	recordAddCmd.Flags().Float64("distance", 0, "Distance run in kilometers")
	recordAddCmd.Flags().Bool("rest", false, "Mark the day as a rest day")
	recordAddCmd.Flags().String("tag", "", "Free-form label for the record (e.g., race, training)")

	recordImportCmd.Flags().String("file", "", "Path to the wide CSV sheet to import")
	recordImportCmd.Flags().Bool("zero-is-rest", false, "Treat zero-distance cells as rest days")
	_ = recordImportCmd.MarkFlagRequired("file")

	recordExportCmd.Flags().String("file", "", "Path to write the wide CSV sheet to (defaults to stdout)")
	recordExportCmd.Flags().String("from", "", "First day of the export range in YYYY-MM-DD format")
	recordExportCmd.Flags().String("to", "", "Last day of the export range in YYYY-MM-DD format")

	rosterAddCmd.Flags().String("name", "", "Display name for the dog (defaults to the ID)")
	rosterAddCmd.Flags().Int("age", 0, "Age of the dog in years")
	rosterAddCmd.Flags().String("role", "", "Team role (e.g., lead, swing, wheel)")

	storeMigrateCmd.Flags().Int("target", -1, "Target migration version (-1 = latest, 0 = roll back all)")
}
