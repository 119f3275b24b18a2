package cmd

import (
	"fmt"

	"github.com/kennelops/musher/internal/contract"
	"github.com/kennelops/musher/internal/recstore"
	"github.com/kennelops/musher/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup(initStore bool) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.StoreBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateStoreConnectionString(backend, connStr); err != nil {
		return err
	}

	if initStore {
		if err := recstore.InitStore(backend, connStr); err != nil {
			return fmt.Errorf("failed to initialize record store: %w", err)
		}
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup(true)
}

// migrateSetupWrapper skips store initialization so migrations can run
// against a schema the store code no longer matches.
func migrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup(false)
}

// storeCmd focused on record store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by analysis commands. This avoids date and output
// processing for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the record store",
	Long: `Manage the database that holds the roster and work records.

Supported backends: SQLite (default), MySQL, PostgreSQL, or Memory

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all stored data
  migrate - Run schema migrations

Examples:
  # Check store status
  musher store status

  # Start a fresh season
  musher store clear`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show detailed information about the record store.

Displays:
- Backend type and connection status
- Number of dogs and work records
- First and last recorded days

Examples:
  # Check store status
  musher store status

  # Check a shared PostgreSQL store
  MUSHER_STORE_BACKEND=postgresql MUSHER_STORE_DB_CONNECT="..." musher store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := recstore.Manager.GetRecordStore().Status(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		recstore.PrintStoreStatus(status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored roster and record data",
	Long: `Delete all roster and work record data from the configured backend.

Use this when:
- Starting a fresh season
- A bad import left the store in a mess
- Testing against an empty store

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the musher tables

Examples:
  # Clear the SQLite store (default)
  musher store clear

  # Clear a MySQL store (set connection string via env variable)
  MUSHER_STORE_BACKEND=mysql MUSHER_STORE_DB_CONNECT="..." musher store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := recstore.ClearStore(cfg.StoreBackend, contract.GetStoreDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations against the record store",
	Long: `Apply or roll back schema migrations on the configured backend.

Without flags, migrates to the latest version. Pass --target to move to
a specific version, or --target 0 to roll everything back.

The memory backend has no schema and cannot be migrated.

Examples:
  # Migrate to the latest schema
  musher store migrate

  # Roll back everything
  musher store migrate --target 0`,
	PreRunE: migrateSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		target, _ := cmd.Flags().GetInt("target")
		if err := recstore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, target); err != nil {
			contract.LogFatal("Failed to migrate store", err)
		}
	},
}
