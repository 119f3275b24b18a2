// Package parquet provides data structures and functions for exporting
// workload snapshots, alerts and team assignments to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/kennelops/musher/schema"
	"github.com/parquet-go/parquet-go"
)

// SnapshotRow is the Parquet shape of a workload indicator snapshot.
type SnapshotRow struct {
	// DogID identifies the dog the snapshot belongs to
	DogID string `parquet:"dog_id,snappy"`

	// AsOf is the evaluation date (stored as TIMESTAMP with nanosecond precision)
	AsOf time.Time `parquet:"as_of,snappy"`

	// WorkStreakLen is the number of consecutive worked days ending at AsOf
	WorkStreakLen int32 `parquet:"work_streak_len,snappy"`

	// RestStreakLen is the number of consecutive rest days ending at AsOf
	RestStreakLen int32 `parquet:"rest_streak_len,snappy"`

	// WorkShare is the worked fraction of the share window (nullable when no
	// records fall inside the window)
	WorkShare *float64 `parquet:"work_share,optional,snappy"`

	// Rolling7 is the trailing seven-day load
	Rolling7 float64 `parquet:"rolling_7d,snappy"`
}

// AlertRow is the Parquet shape of a rule alert.
type AlertRow struct {
	// DogID identifies the dog the alert fired for
	DogID string `parquet:"dog_id,snappy"`

	// Date is the evaluation date (stored as TIMESTAMP with nanosecond precision)
	Date time.Time `parquet:"date,snappy"`

	// Rule is the rule identifier that fired
	Rule string `parquet:"rule,snappy"`

	// Severity is the alert severity band
	Severity string `parquet:"severity,snappy"`

	// Observed is the measured indicator value
	Observed float64 `parquet:"observed,snappy"`

	// Threshold is the configured limit the value was compared against
	Threshold float64 `parquet:"threshold,snappy"`

	// Explanation is the human-readable alert message
	Explanation string `parquet:"explanation,snappy"`
}

// AssignmentRow is the Parquet shape of one selected team member.
type AssignmentRow struct {
	// Date is the run date the team was built for
	Date time.Time `parquet:"date,snappy"`

	// Rank is the 1-based selection order, freshest dog first
	Rank int32 `parquet:"rank,snappy"`

	// DogID identifies the selected dog
	DogID string `parquet:"dog_id,snappy"`

	// RollingComponent is the weighted rolling-load part of the fatigue score
	RollingComponent float64 `parquet:"rolling_component,snappy"`

	// StreakComponent is the weighted work-streak part of the fatigue score
	StreakComponent float64 `parquet:"streak_component,snappy"`

	// Fatigue is the total fatigue score used for ranking
	Fatigue float64 `parquet:"fatigue,snappy"`

	// Underfilled records whether the team missed its requested size
	Underfilled bool `parquet:"underfilled,snappy"`
}

// WriteSnapshots writes a slice of SnapshotRow structs to a Parquet file.
func WriteSnapshots(data []SnapshotRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteAlerts writes a slice of AlertRow structs to a Parquet file.
func WriteAlerts(data []AlertRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteAssignments writes a slice of AssignmentRow structs to a Parquet file.
func WriteAssignments(data []AssignmentRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// writeRows creates the output file and streams rows through a generic writer
// whose schema is inferred from the struct tags.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ConvertSnapshots converts schema.IndicatorSnapshot to SnapshotRow for Parquet export.
func ConvertSnapshots(snaps []schema.IndicatorSnapshot) []SnapshotRow {
	result := make([]SnapshotRow, len(snaps))
	for i, s := range snaps {
		row := SnapshotRow{
			DogID:         s.DogID,
			AsOf:          s.AsOf,
			WorkStreakLen: int32(s.WorkStreak),
			RestStreakLen: int32(s.RestStreak),
			Rolling7:      s.Rolling7,
		}
		if s.ShareDefined {
			share := s.WorkShare
			row.WorkShare = &share
		}
		result[i] = row
	}
	return result
}

// ConvertAlerts converts schema.Alert to AlertRow for Parquet export.
func ConvertAlerts(alerts []schema.Alert) []AlertRow {
	result := make([]AlertRow, len(alerts))
	for i, a := range alerts {
		result[i] = AlertRow{
			DogID:       a.DogID,
			Date:        a.Date,
			Rule:        string(a.Rule),
			Severity:    string(a.Severity),
			Observed:    a.Observed,
			Threshold:   a.Threshold,
			Explanation: a.Explanation,
		}
	}
	return result
}

// ConvertAssignment flattens a schema.TeamAssignment into one AssignmentRow
// per selected dog for Parquet export.
func ConvertAssignment(assignment schema.TeamAssignment) []AssignmentRow {
	byDog := make(map[string]schema.FatigueBreakdown, len(assignment.Breakdown))
	for _, b := range assignment.Breakdown {
		byDog[b.DogID] = b
	}
	result := make([]AssignmentRow, len(assignment.DogIDs))
	for i, id := range assignment.DogIDs {
		b := byDog[id]
		result[i] = AssignmentRow{
			Date:             assignment.Date,
			Rank:             int32(i + 1),
			DogID:            id,
			RollingComponent: b.Rolling,
			StreakComponent:  b.Streak,
			Fatigue:          b.Total,
			Underfilled:      assignment.Underfilled,
		}
	}
	return result
}
