package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kennelops/musher/internal/contract"
	"github.com/kennelops/musher/internal/parquet"
	"github.com/kennelops/musher/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAssignment outputs a team assignment, dispatching on the configured
// output format.
func WriteAssignment(assignment schema.TeamAssignment, roster []schema.Dog, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	names := rosterNames(roster)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssignmentJSON(w, assignment)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssignmentCSV(w, assignment, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.WriteAssignments(parquet.ConvertAssignment(assignment), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Printf("Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAssignmentTable(w, assignment, names, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

func writeAssignmentTable(w io.Writer, assignment schema.TeamAssignment, names map[string]string, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	fmt.Fprintf(w, "Team for %s: %d of %d requested\n",
		schema.FormatDay(assignment.Date), len(assignment.DogIDs), assignment.Requested)
	fmt.Fprintf(w, "Pool: %d roster, %d excluded, %d blocked, %d eligible\n\n",
		assignment.Pool.Roster, assignment.Pool.Excluded, assignment.Pool.Blocked, assignment.Pool.Eligible)

	if len(assignment.DogIDs) > 0 {
		table := tablewriter.NewWriter(w)
		headers := []string{"Rank", "Dog", "Name"}
		if cfg.Explain {
			headers = append(headers, "Rolling", "Streak", "Fatigue")
		}
		table.Header(headers)
		table.Configure(func(tc *tablewriter.Config) {
			tc.Row.Alignment.Global = tw.AlignRight
		})

		breakdowns := breakdownByDog(assignment.Breakdown)
		var data [][]string
		for i, id := range assignment.DogIDs {
			row := []string{strconv.Itoa(i + 1), id, names[id]}
			if cfg.Explain {
				b := breakdowns[id]
				row = append(row, fmtFloat(b.Rolling), fmtFloat(b.Streak), fmtFloat(b.Total))
			}
			data = append(data, row)
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if assignment.Underfilled {
		fmt.Fprintln(w, "\nTeam is underfilled:")
		for _, reason := range assignment.Reasons {
			fmt.Fprintf(w, "  - %s\n", reason)
		}
	}

	_, err := fmt.Fprintf(w, "\nAssembled team in %v\n", duration.Round(time.Millisecond))
	return err
}

func writeAssignmentCSV(w io.Writer, assignment schema.TeamAssignment, fmtFloat func(float64) string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"rank", "dog_id", "date", "rolling_component", "streak_component", "fatigue", "underfilled"}
	if err := cw.Write(header); err != nil {
		return err
	}
	breakdowns := breakdownByDog(assignment.Breakdown)
	for i, id := range assignment.DogIDs {
		b := breakdowns[id]
		row := []string{
			strconv.Itoa(i + 1),
			id,
			schema.FormatDay(assignment.Date),
			fmtFloat(b.Rolling),
			fmtFloat(b.Streak),
			fmtFloat(b.Total),
			strconv.FormatBool(assignment.Underfilled),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeAssignmentJSON(w io.Writer, assignment schema.TeamAssignment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(assignment)
}

// breakdownByDog maps fatigue breakdowns by dog ID for row lookups.
func breakdownByDog(breakdowns []schema.FatigueBreakdown) map[string]schema.FatigueBreakdown {
	byDog := make(map[string]schema.FatigueBreakdown, len(breakdowns))
	for _, b := range breakdowns {
		byDog[b.DogID] = b
	}
	return byDog
}
