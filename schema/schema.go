// Package schema has configs, models and shared constants for all parts of musher.
package schema

import (
	"errors"
	"time"
)

// Error taxonomy for the analytical core. Callers wrap these with the
// offending key via fmt.Errorf and %w.
var (
	// ErrInvalidHistory signals malformed work-record history, such as a
	// duplicate (dog, date) key or an as-of date before the earliest record.
	ErrInvalidHistory = errors.New("invalid history")

	// ErrInvalidRoster signals malformed team-building input, such as a
	// non-positive team size or a duplicate dog in the roster.
	ErrInvalidRoster = errors.New("invalid roster")
)

// Dog is a long-lived roster entity. Records, indicators and assignments
// reference dogs by ID but never own them.
type Dog struct {
	ID   string `json:"dog_id"`
	Name string `json:"name"`
	Age  int    `json:"age,omitempty"`
	Role string `json:"role,omitempty"` // preferred position: lead, team or wheel
}

// WorkRecord is one dog's work for one day. Immutable once stored and
// uniquely keyed by (DogID, Date); at most one record per dog per day.
type WorkRecord struct {
	DogID    string    `json:"dog_id"`
	Date     time.Time `json:"date"` // normalized to midnight UTC
	Worked   bool      `json:"worked"`
	Distance float64   `json:"distance"` // kilometers; zero is valid for worked days without GPS data
	Tag      string    `json:"tag,omitempty"`
}

// IndicatorSnapshot holds the derived workload metrics for one dog as of one
// date. It is a pure function of the dog's record history up to and including
// AsOf and is never persisted independently.
type IndicatorSnapshot struct {
	DogID        string    `json:"dog_id"`
	AsOf         time.Time `json:"as_of"`
	WorkStreak   int       `json:"work_streak_len"`
	RestStreak   int       `json:"rest_streak_len"`
	WorkShare    float64   `json:"work_share"` // meaningful only when ShareDefined
	ShareDefined bool      `json:"share_defined"`
	RecordedDays int       `json:"recorded_days"` // days with a record inside the share window
	Rolling7     float64   `json:"rolling_7d"`
}

// Alert is one threshold breach for one dog on one date. The explanation
// always embeds the literal observed value and the literal threshold it was
// compared against.
type Alert struct {
	DogID       string    `json:"dog_id"`
	Date        time.Time `json:"date"`
	Rule        RuleName  `json:"rule_name"`
	Severity    Severity  `json:"severity"`
	Observed    float64   `json:"observed"`
	Threshold   float64   `json:"threshold"`
	Explanation string    `json:"explanation"`
}

// FatigueBreakdown explains how one dog's fatigue score was composed.
type FatigueBreakdown struct {
	DogID   string  `json:"dog_id"`
	Rolling float64 `json:"rolling_component"`
	Streak  float64 `json:"streak_component"`
	Total   float64 `json:"total"`
}

// PoolStats summarizes candidate filtering for one team-building pass.
type PoolStats struct {
	Roster   int `json:"roster"`
	Excluded int `json:"excluded"` // removed by manual exclusion
	Blocked  int `json:"blocked"`  // removed by a blocking alert kind
	Eligible int `json:"eligible"`
}

// TeamAssignment is the result of one team-building pass for one date.
// DogIDs is ordered by ascending fatigue; a dog appears at most once.
// The assignment is never retroactively mutated.
type TeamAssignment struct {
	Date        time.Time          `json:"date"`
	DogIDs      []string           `json:"dog_ids"`
	Requested   int                `json:"requested_size"`
	Underfilled bool               `json:"underfilled"`
	Pool        PoolStats          `json:"pool"`
	Reasons     []string           `json:"reasons,omitempty"` // why the pool came up short
	Breakdown   []FatigueBreakdown `json:"breakdown,omitempty"`
}

// StoreStatus reports on the record store backing a command run.
type StoreStatus struct {
	Backend   string    `json:"backend"`
	Connected bool      `json:"connected"`
	Dogs      int       `json:"dogs"`
	Records   int       `json:"records"`
	FirstDate time.Time `json:"first_date,omitzero"`
	LastDate  time.Time `json:"last_date,omitzero"`
}
