package core

import (
	"fmt"
	"time"

	"github.com/kennelops/musher/schema"
)

// ComputeSnapshot derives the workload indicators for one dog as of one date.
// It is a pure function over the supplied history slice: same inputs, same
// snapshot, no side effects.
//
// A day with no record counts as a rest day. This keeps a no-record day from
// silently extending a work streak, and it keeps rest streaks honest when log
// entry is spotty.
func ComputeSnapshot(dogID string, asOf time.Time, history []schema.WorkRecord, cfg *schema.RuleConfig) (schema.IndicatorSnapshot, error) {
	asOf = schema.Day(asOf)

	byDay, earliest, err := indexHistory(dogID, history)
	if err != nil {
		return schema.IndicatorSnapshot{}, err
	}
	if len(byDay) > 0 && asOf.Before(earliest) {
		return schema.IndicatorSnapshot{}, fmt.Errorf(
			"%w: as-of date %s predates earliest record %s for dog %s",
			schema.ErrInvalidHistory, schema.FormatDay(asOf), schema.FormatDay(earliest), dogID)
	}

	snap := schema.IndicatorSnapshot{DogID: dogID, AsOf: asOf}

	// Work streak: consecutive worked days ending at asOf. A missing day or
	// a rest record terminates it.
	day := asOf
	for {
		rec, ok := byDay[day]
		if !ok || !rec.Worked {
			break
		}
		snap.WorkStreak++
		day = day.AddDate(0, 0, -1)
	}

	// Rest streak: only meaningful when the dog is not mid-streak. Missing
	// days count as rest, bounded by the earliest record so a brand-new dog
	// does not report an unbounded rest streak.
	if snap.WorkStreak == 0 && len(byDay) > 0 {
		day = asOf
		for !day.Before(earliest) {
			if rec, ok := byDay[day]; ok && rec.Worked {
				break
			}
			snap.RestStreak++
			day = day.AddDate(0, 0, -1)
		}
	}

	// Work share over the trailing window, counting only days that have a
	// record. No records in the window leaves the share undefined, which is
	// distinct from a defined share of zero.
	window := cfg.ShareWindow
	worked := 0
	for i := range window {
		d := asOf.AddDate(0, 0, -i)
		rec, ok := byDay[d]
		if !ok {
			continue
		}
		snap.RecordedDays++
		if rec.Worked {
			worked++
		}
	}
	if snap.RecordedDays > 0 {
		snap.ShareDefined = true
		snap.WorkShare = float64(worked) / float64(window)
	}

	// Rolling 7-day load: total distance, falling back to the work-day count
	// when no distance data exists in the window.
	workDays := 0
	for i := range 7 {
		d := asOf.AddDate(0, 0, -i)
		rec, ok := byDay[d]
		if !ok {
			continue
		}
		snap.Rolling7 += rec.Distance
		if rec.Worked {
			workDays++
		}
	}
	if snap.Rolling7 == 0 && workDays > 0 {
		snap.Rolling7 = float64(workDays)
	}

	return snap, nil
}

// indexHistory builds a day-keyed index of the history and returns the
// earliest record date. Duplicate (dog, date) keys are a hard error reported
// with the offending key.
func indexHistory(dogID string, history []schema.WorkRecord) (map[time.Time]schema.WorkRecord, time.Time, error) {
	byDay := make(map[time.Time]schema.WorkRecord, len(history))
	var earliest time.Time

	for _, rec := range history {
		if rec.DogID != dogID {
			return nil, time.Time{}, fmt.Errorf(
				"%w: record for dog %s found in history of dog %s",
				schema.ErrInvalidHistory, rec.DogID, dogID)
		}
		day := schema.Day(rec.Date)
		if _, dup := byDay[day]; dup {
			return nil, time.Time{}, fmt.Errorf(
				"%w: duplicate record for dog %s on %s",
				schema.ErrInvalidHistory, dogID, schema.FormatDay(day))
		}
		rec.Date = day
		byDay[day] = rec
		if earliest.IsZero() || day.Before(earliest) {
			earliest = day
		}
	}
	return byDay, earliest, nil
}
