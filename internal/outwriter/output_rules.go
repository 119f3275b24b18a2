package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/kennelops/musher/internal/contract"
	"github.com/kennelops/musher/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRules outputs the active rule thresholds and fatigue weights.
// This is a static display that does not touch the record store.
func WriteRules(rules *schema.RuleConfig, cfg *contract.Config) error {
	keys := rules.Keys()

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRulesJSON(w, keys)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRulesCSV(w, keys)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is not supported for rules")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRulesTable(w, keys)
		}, "Wrote table")
	}
}

func writeRulesTable(w io.Writer, keys []schema.ConfigKey) error {
	fmt.Fprintln(w, "Active rule settings:")
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Setting", "Value"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, key := range keys {
		data = append(data, []string{key.Name, key.Value})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeRulesCSV(w io.Writer, keys []schema.ConfigKey) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"setting", "value"}); err != nil {
		return err
	}
	for _, key := range keys {
		if err := cw.Write([]string{key.Name, key.Value}); err != nil {
			return err
		}
	}
	return nil
}

func writeRulesJSON(w io.Writer, keys []schema.ConfigKey) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(keys)
}
