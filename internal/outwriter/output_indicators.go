package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/kennelops/musher/internal/contract"
	"github.com/kennelops/musher/internal/parquet"
	"github.com/kennelops/musher/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// shareNA is printed for an undefined work share. A dash, not a zero: a dog
// with no records in the window has no share at all.
const shareNA = "n/a"

// WriteIndicators outputs the snapshots, dispatching on the configured
// output format.
func WriteIndicators(snaps []schema.IndicatorSnapshot, roster []schema.Dog, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	names := rosterNames(roster)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIndicatorJSON(w, snaps)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIndicatorCSV(w, snaps, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.WriteSnapshots(parquet.ConvertSnapshots(snaps), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Printf("Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIndicatorTable(w, snaps, names, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

func writeIndicatorTable(w io.Writer, snaps []schema.IndicatorSnapshot, names map[string]string, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if len(snaps) == 0 {
		_, err := fmt.Fprintln(w, "No dogs in roster.")
		return err
	}

	fmt.Fprintf(w, "Workload indicators as of %s:\n\n", schema.FormatDay(snaps[0].AsOf))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Dog", "Name", "Work Streak", "Rest Streak", "Work Share", "Rolling 7d"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range snaps {
		share := shareNA
		if s.ShareDefined {
			share = fmtFloat(s.WorkShare)
		}
		data = append(data, []string{
			s.DogID,
			names[s.DogID],
			fmt.Sprintf("%d", s.WorkStreak),
			fmt.Sprintf("%d", s.RestStreak),
			share,
			fmtFloat(s.Rolling7),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nComputed %d snapshot(s) in %v\n", len(snaps), duration.Round(time.Millisecond))
	return err
}

func writeIndicatorCSV(w io.Writer, snaps []schema.IndicatorSnapshot, fmtFloat func(float64) string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"dog_id", "as_of", "work_streak_len", "rest_streak_len", "work_share", "rolling_7d"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range snaps {
		share := shareNA
		if s.ShareDefined {
			share = fmtFloat(s.WorkShare)
		}
		row := []string{
			s.DogID,
			schema.FormatDay(s.AsOf),
			fmt.Sprintf("%d", s.WorkStreak),
			fmt.Sprintf("%d", s.RestStreak),
			share,
			fmtFloat(s.Rolling7),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeIndicatorJSON(w io.Writer, snaps []schema.IndicatorSnapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snaps)
}

// rosterNames maps dog IDs to display names.
func rosterNames(roster []schema.Dog) map[string]string {
	names := make(map[string]string, len(roster))
	for _, dog := range roster {
		names[dog.ID] = dog.Name
	}
	return names
}
