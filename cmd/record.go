package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/kennelops/musher/internal/contract"
	"github.com/kennelops/musher/internal/recstore"
	"github.com/kennelops/musher/schema"
	"github.com/spf13/cobra"
)

// recordCmd groups work record management.
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage daily work records",
	Long: `Manage the daily work records that indicators are computed from.

Each record says whether a dog worked on a given day and how far it ran.
Records can be added one at a time, or moved in bulk through wide CSV
sheets where each row is a dog and each column is a day.

Subcommands:
  add    - Record a single day for a single dog
  import - Load records from a wide CSV sheet
  export - Write records out as a wide CSV sheet

Examples:
  # Record a 12.5 km training day
  musher record add --dog balto --date 2026-02-10 --distance 12.5

  # Load a season sheet
  musher record import --file season.csv`,
}

// recordAddCmd records one day for one dog.
var recordAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a single day for a single dog",
	Long: `Record whether a dog worked on a given day and how far it ran.

The dog is created on the roster if it is not already known. Re-adding
a record for the same dog and day overwrites the previous one.

Examples:
  # A 12.5 km training day
  musher record add --dog balto --date 2026-02-10 --distance 12.5

  # A tagged race day
  musher record add --dog togo --date 2026-02-11 --distance 42 --tag race

  # An explicit rest day
  musher record add --dog balto --date 2026-02-12 --rest`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		if cfg.DogFilter == "" {
			contract.LogFatal("Cannot add record", fmt.Errorf("--dog is required"))
		}
		distance, _ := cmd.Flags().GetFloat64("distance")
		rest, _ := cmd.Flags().GetBool("rest")
		tag, _ := cmd.Flags().GetString("tag")
		if rest && distance != 0 {
			contract.LogFatal("Cannot add record", fmt.Errorf("--rest and --distance are mutually exclusive"))
		}

		store := storeManager.GetRecordStore()
		roster, err := store.Roster(rootCtx)
		if err != nil {
			contract.LogFatal("Cannot add record", err)
		}
		known := false
		for _, dog := range roster {
			if dog.ID == cfg.DogFilter {
				known = true
				break
			}
		}
		if !known {
			// Register the dog with the ID as a placeholder name.
			if err := store.UpsertDog(rootCtx, schema.Dog{ID: cfg.DogFilter, Name: cfg.DogFilter}); err != nil {
				contract.LogFatal("Cannot add record", err)
			}
		}
		rec := schema.WorkRecord{
			DogID:    cfg.DogFilter,
			Date:     cfg.Date,
			Worked:   !rest,
			Distance: distance,
			Tag:      tag,
		}
		created, err := store.UpsertRecord(rootCtx, rec)
		if err != nil {
			contract.LogFatal("Cannot add record", err)
		}
		verb := "Updated"
		if created {
			verb = "Recorded"
		}
		fmt.Printf("%s %s for %s.\n", verb, schema.FormatDay(cfg.Date), cfg.DogFilter)
	},
}

// recordImportCmd loads records from a wide CSV sheet.
var recordImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load records from a wide CSV sheet",
	Long: `Load work records from a wide CSV sheet.

The first column holds the dog ID and every remaining header is a day in
YYYY-MM-DD format. A cell holds the distance run that day; an empty cell
means no record. Dogs not yet on the roster are created on the fly.

By default a zero cell counts as a worked day with no distance. Pass
--zero-is-rest to treat zero cells as rest days instead.

Examples:
  # Load a season sheet
  musher record import --file season.csv

  # Sheets where 0 means a day off
  musher record import --file season.csv --zero-is-rest`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		file, _ := cmd.Flags().GetString("file")
		zeroIsRest, _ := cmd.Flags().GetBool("zero-is-rest")

		f, err := os.Open(file)
		if err != nil {
			contract.LogFatal("Cannot import records", err)
		}
		defer func() { _ = f.Close() }()

		store := storeManager.GetRecordStore()
		summary, err := recstore.ImportWideCSV(rootCtx, store, f, zeroIsRest)
		if err != nil {
			contract.LogFatal("Cannot import records", err)
		}
		fmt.Printf("Imported %d record(s) for %d dog(s): %d new, %d updated, %d dog(s) added to roster.\n",
			summary.Inserted+summary.Updated, summary.Dogs, summary.Inserted, summary.Updated, summary.NewDogs)
	},
}

// recordExportCmd writes records out as a wide CSV sheet.
var recordExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write records out as a wide CSV sheet",
	Long: `Write all work records as a wide CSV sheet.

The output mirrors the import format: one row per dog, one column per
day in the range. Worked days print their distance, rest days print 0
and days without a record stay empty. Without --from and --to the range
spans the first through last recorded day.

Examples:
  # Dump everything to stdout
  musher record export

  # A fixed range into a file
  musher record export --from 2026-02-01 --to 2026-02-28 --file feb.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		file, _ := cmd.Flags().GetString("file")
		fromStr, _ := cmd.Flags().GetString("from")
		toStr, _ := cmd.Flags().GetString("to")

		store := storeManager.GetRecordStore()
		from, to, err := exportRange(fromStr, toStr)
		if err != nil {
			contract.LogFatal("Cannot export records", err)
		}

		out := os.Stdout
		if file != "" {
			f, err := os.Create(file)
			if err != nil {
				contract.LogFatal("Cannot export records", err)
			}
			defer func() { _ = f.Close() }()
			out = f
		}
		if err := recstore.ExportWideCSV(rootCtx, store, out, from, to); err != nil {
			contract.LogFatal("Cannot export records", err)
		}
	},
}

// exportRange resolves the export window, falling back to the span of
// recorded data when a bound is not given.
func exportRange(fromStr, toStr string) (time.Time, time.Time, error) {
	var from, to time.Time
	var err error
	if fromStr != "" {
		if from, err = schema.ParseDay(fromStr); err != nil {
			return from, to, err
		}
	}
	if toStr != "" {
		if to, err = schema.ParseDay(toStr); err != nil {
			return from, to, err
		}
	}
	if !from.IsZero() && !to.IsZero() {
		return from, to, nil
	}

	status, err := storeManager.GetRecordStore().Status(rootCtx)
	if err != nil {
		return from, to, err
	}
	if status.Records == 0 {
		return from, to, fmt.Errorf("no records to export")
	}
	if from.IsZero() {
		from = status.FirstDate
	}
	if to.IsZero() {
		to = status.LastDate
	}
	return from, to, nil
}
