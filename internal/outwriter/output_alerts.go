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

// WriteAlerts outputs rule alerts, dispatching on the configured output
// format.
func WriteAlerts(alerts []schema.Alert, roster []schema.Dog, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	names := rosterNames(roster)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAlertJSON(w, alerts)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAlertCSV(w, alerts, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.WriteAlerts(parquet.ConvertAlerts(alerts), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Printf("Wrote Parquet to %s\n", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAlertTable(w, alerts, names, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

func writeAlertTable(w io.Writer, alerts []schema.Alert, names map[string]string, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	if len(alerts) == 0 {
		_, err := fmt.Fprintln(w, "No alerts. All dogs are within their thresholds.")
		return err
	}

	fmt.Fprintf(w, "Workload alerts for %s:\n\n", schema.FormatDay(alerts[0].Date))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Dog", "Name", "Rule", "Severity", "Observed", "Threshold", "Explanation"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	// Leave room for the fixed columns so long explanations do not wrap.
	explainWidth := terminalWidth() - 60
	if explainWidth < 20 {
		explainWidth = 20
	}

	var data [][]string
	for _, a := range alerts {
		data = append(data, []string{
			a.DogID,
			names[a.DogID],
			string(a.Rule),
			contract.GetSeverityLabel(a.Severity, cfg.UseColors),
			fmtFloat(a.Observed),
			fmtFloat(a.Threshold),
			truncate(a.Explanation, explainWidth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	counts := countBySeverity(alerts)
	_, err := fmt.Fprintf(w, "\n%d alert(s): %d critical, %d warning, %d info. Evaluated in %v\n",
		len(alerts), counts[schema.SeverityCritical], counts[schema.SeverityWarning],
		counts[schema.SeverityInfo], duration.Round(time.Millisecond))
	return err
}

func writeAlertCSV(w io.Writer, alerts []schema.Alert, fmtFloat func(float64) string) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"dog_id", "date", "rule", "severity", "observed", "threshold", "explanation"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, a := range alerts {
		row := []string{
			a.DogID,
			schema.FormatDay(a.Date),
			string(a.Rule),
			string(a.Severity),
			fmtFloat(a.Observed),
			fmtFloat(a.Threshold),
			a.Explanation,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeAlertJSON(w io.Writer, alerts []schema.Alert) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(alerts)
}

// countBySeverity tallies alerts per severity level.
func countBySeverity(alerts []schema.Alert) map[schema.Severity]int {
	counts := make(map[schema.Severity]int, len(schema.SeverityRank))
	for _, a := range alerts {
		counts[a.Severity]++
	}
	return counts
}
