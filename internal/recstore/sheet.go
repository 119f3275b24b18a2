package recstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/kennelops/musher/internal/contract"
	"github.com/kennelops/musher/schema"
)

// ImportSummary reports what a wide-sheet import did.
type ImportSummary struct {
	Dogs     int // dogs touched by the sheet
	NewDogs  int // dogs not previously in the roster
	Inserted int // records created
	Updated  int // records replaced
}

// ImportWideCSV reads a wide training sheet: one row per dog, one column per
// ISO date, each cell a distance in kilometers. An empty cell means no record
// for that day. A zero cell is a worked day with no GPS data, unless
// zeroIsRest is set, in which case it is a rest day.
func ImportWideCSV(ctx context.Context, store contract.RecordStore, r io.Reader, zeroIsRest bool) (ImportSummary, error) {
	var summary ImportSummary

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return summary, fmt.Errorf("failed to read sheet header: %w", err)
	}
	if len(header) < 2 {
		return summary, fmt.Errorf("sheet header needs a dog column plus at least one date column")
	}

	// Every column after the first must be an ISO date.
	dates := make([]time.Time, 0, len(header)-1)
	for _, cell := range header[1:] {
		day, err := schema.ParseDay(strings.TrimSpace(cell))
		if err != nil {
			return summary, fmt.Errorf("invalid date column %q: %w", cell, err)
		}
		dates = append(dates, day)
	}

	roster, err := store.Roster(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to load roster: %w", err)
	}
	known := make(map[string]struct{}, len(roster))
	for _, dog := range roster {
		known[dog.ID] = struct{}{}
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("failed to read sheet row: %w", err)
		}
		if len(row) != len(header) {
			return summary, fmt.Errorf("row for %q has %d cells, header has %d", row[0], len(row), len(header))
		}

		dogID := strings.TrimSpace(row[0])
		if dogID == "" {
			return summary, fmt.Errorf("sheet row with empty dog ID")
		}
		summary.Dogs++
		if _, ok := known[dogID]; !ok {
			// Register unknown dogs with the ID as a placeholder name.
			if err := store.UpsertDog(ctx, schema.Dog{ID: dogID, Name: dogID}); err != nil {
				return summary, err
			}
			known[dogID] = struct{}{}
			summary.NewDogs++
		}

		for i, cell := range row[1:] {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue // no record for that day
			}
			distance, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return summary, fmt.Errorf("invalid distance %q for dog %s on %s: %w",
					cell, dogID, schema.FormatDay(dates[i]), err)
			}
			if distance < 0 {
				return summary, fmt.Errorf("negative distance %q for dog %s on %s",
					cell, dogID, schema.FormatDay(dates[i]))
			}

			rec := schema.WorkRecord{
				DogID:    dogID,
				Date:     dates[i],
				Worked:   !(distance == 0 && zeroIsRest),
				Distance: distance,
			}
			created, err := store.UpsertRecord(ctx, rec)
			if err != nil {
				return summary, err
			}
			if created {
				summary.Inserted++
			} else {
				summary.Updated++
			}
		}
	}
	return summary, nil
}

// ExportWideCSV writes the store contents as a wide training sheet covering
// [from, to] inclusive. Rest days export as 0 and days without a record as an
// empty cell, the inverse of ImportWideCSV.
func ExportWideCSV(ctx context.Context, store contract.RecordStore, w io.Writer, from, to time.Time) error {
	if to.Before(from) {
		return fmt.Errorf("export range ends %s before it starts %s", schema.FormatDay(to), schema.FormatDay(from))
	}

	roster, err := store.Roster(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	days := schema.DaysBetween(from, to) + 1
	header := make([]string, 0, days+1)
	header = append(header, "dog_id")
	for i := range days {
		header = append(header, schema.FormatDay(from.AddDate(0, 0, i)))
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, dog := range roster {
		history, err := store.History(ctx, dog.ID)
		if err != nil {
			return fmt.Errorf("failed to load history for dog %s: %w", dog.ID, err)
		}
		byDate := make(map[string]schema.WorkRecord, len(history))
		for _, rec := range history {
			byDate[schema.FormatDay(rec.Date)] = rec
		}

		row := make([]string, 0, days+1)
		row = append(row, dog.ID)
		for i := range days {
			key := schema.FormatDay(from.AddDate(0, 0, i))
			rec, ok := byDate[key]
			switch {
			case !ok:
				row = append(row, "")
			case !rec.Worked:
				row = append(row, "0")
			default:
				row = append(row, strconv.FormatFloat(rec.Distance, 'f', -1, 64))
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}
