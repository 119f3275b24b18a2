package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/kennelops/musher/internal/contract"
	"github.com/kennelops/musher/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRoster outputs the roster, dispatching on the configured output format.
func WriteRoster(roster []schema.Dog, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRosterJSON(w, roster)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRosterCSV(w, roster)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for the roster")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRosterTable(w, roster, duration)
		}, "Wrote table")
	}
}

func writeRosterTable(w io.Writer, roster []schema.Dog, duration time.Duration) error {
	if len(roster) == 0 {
		_, err := fmt.Fprintln(w, "No dogs in roster.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Dog", "Name", "Age", "Role"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, dog := range roster {
		age := ""
		if dog.Age > 0 {
			age = fmt.Sprintf("%d", dog.Age)
		}
		data = append(data, []string{dog.ID, dog.Name, age, dog.Role})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d dog(s) on the roster. Listed in %v\n", len(roster), duration.Round(time.Millisecond))
	return err
}

func writeRosterCSV(w io.Writer, roster []schema.Dog) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"dog_id", "name", "age", "role"}); err != nil {
		return err
	}
	for _, dog := range roster {
		row := []string{dog.ID, dog.Name, fmt.Sprintf("%d", dog.Age), dog.Role}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeRosterJSON(w io.Writer, roster []schema.Dog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(roster)
}
