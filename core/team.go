package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/kennelops/musher/schema"
)

// BuildTeam selects and orders dogs for one day's team. The algorithm is a
// deterministic greedy pass, not a general optimizer: explainability wins
// over optimality.
//
//  1. Drop manually excluded dogs and dogs carrying an alert whose kind is
//     configured as blocking.
//  2. Rank the rest ascending by fatigue score, ties broken by dog ID.
//  3. Take the first size dogs. A short pool yields a short assignment with
//     Underfilled set; excluded dogs are never used as padding.
//
// BuildTeam never mutates its inputs.
func BuildTeam(
	date time.Time,
	roster []schema.Dog,
	size int,
	alertsByDog map[string][]schema.Alert,
	snapsByDog map[string]schema.IndicatorSnapshot,
	exclusions []string,
	cfg *schema.RuleConfig,
) (schema.TeamAssignment, error) {
	if size <= 0 {
		return schema.TeamAssignment{}, fmt.Errorf(
			"%w: team size must be positive, got %d", schema.ErrInvalidRoster, size)
	}

	seen := make(map[string]struct{}, len(roster))
	for _, dog := range roster {
		if _, dup := seen[dog.ID]; dup {
			return schema.TeamAssignment{}, fmt.Errorf(
				"%w: duplicate dog %s in roster", schema.ErrInvalidRoster, dog.ID)
		}
		seen[dog.ID] = struct{}{}
	}

	excluded := make(map[string]struct{}, len(exclusions))
	for _, id := range exclusions {
		excluded[id] = struct{}{}
	}

	assignment := schema.TeamAssignment{
		Date:      schema.Day(date),
		Requested: size,
		Pool:      schema.PoolStats{Roster: len(roster)},
	}

	var candidates []schema.FatigueBreakdown
	for _, dog := range roster {
		if _, out := excluded[dog.ID]; out {
			assignment.Pool.Excluded++
			continue
		}
		if blockedBy(alertsByDog[dog.ID], cfg) != "" {
			assignment.Pool.Blocked++
			continue
		}
		// A dog without a snapshot has no recorded load and ranks freshest.
		candidates = append(candidates, fatigueScore(dog.ID, snapsByDog[dog.ID], cfg))
	}
	assignment.Pool.Eligible = len(candidates)

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Total != candidates[j].Total {
			return candidates[i].Total < candidates[j].Total
		}
		return candidates[i].DogID < candidates[j].DogID
	})

	picked := candidates
	if len(picked) > size {
		picked = picked[:size]
	}
	for _, c := range picked {
		assignment.DogIDs = append(assignment.DogIDs, c.DogID)
		assignment.Breakdown = append(assignment.Breakdown, c)
	}

	if len(assignment.DogIDs) < size {
		assignment.Underfilled = true
		assignment.Reasons = unmetReasons(assignment.Pool, size)
	}
	return assignment, nil
}

// fatigueScore combines recent rolling load and the current work streak into
// the ranking value. Lower is fresher.
func fatigueScore(dogID string, snap schema.IndicatorSnapshot, cfg *schema.RuleConfig) schema.FatigueBreakdown {
	b := schema.FatigueBreakdown{
		DogID:   dogID,
		Rolling: cfg.FatigueWeightRolling * snap.Rolling7,
		Streak:  cfg.FatigueWeightStreak * float64(snap.WorkStreak),
	}
	b.Total = b.Rolling + b.Streak
	return b
}

// blockedBy returns the first blocking alert kind found, or "" when the dog
// is selectable.
func blockedBy(alerts []schema.Alert, cfg *schema.RuleConfig) schema.RuleName {
	for _, a := range alerts {
		if cfg.Blocking(a.Rule) {
			return a.Rule
		}
	}
	return ""
}

// unmetReasons explains an underfilled assignment in operator terms.
func unmetReasons(pool schema.PoolStats, size int) []string {
	reasons := []string{
		fmt.Sprintf("requested %d dogs but only %d are eligible", size, pool.Eligible),
	}
	if pool.Excluded > 0 {
		reasons = append(reasons, fmt.Sprintf("%d dog(s) excluded manually", pool.Excluded))
	}
	if pool.Blocked > 0 {
		reasons = append(reasons, fmt.Sprintf("%d dog(s) blocked by active alerts", pool.Blocked))
	}
	if pool.Roster < size {
		reasons = append(reasons, fmt.Sprintf("roster holds %d dog(s) in total", pool.Roster))
	}
	return reasons
}
