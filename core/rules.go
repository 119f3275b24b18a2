package core

import (
	"fmt"
	"sort"

	"github.com/kennelops/musher/schema"
)

// EvaluateRules checks one snapshot against every configured threshold and
// returns the triggered alerts. Rules are independent of each other; the
// result is sorted by descending severity, then rule name, so identical
// inputs always present identically.
func EvaluateRules(dogID string, snap schema.IndicatorSnapshot, cfg *schema.RuleConfig) []schema.Alert {
	var alerts []schema.Alert

	add := func(rule schema.RuleName, sev schema.Severity, observed, threshold float64, explanation string) {
		alerts = append(alerts, schema.Alert{
			DogID:       dogID,
			Date:        snap.AsOf,
			Rule:        rule,
			Severity:    sev,
			Observed:    observed,
			Threshold:   threshold,
			Explanation: explanation,
		})
	}

	if snap.WorkStreak > cfg.MaxWorkStreak {
		observed := float64(snap.WorkStreak)
		threshold := float64(cfg.MaxWorkStreak)
		add(schema.RuleLongWorkStreak, scaleSeverity(observed, threshold), observed, threshold,
			fmt.Sprintf("work streak of %d days exceeds the limit of %d days", snap.WorkStreak, cfg.MaxWorkStreak))
	}

	// Excess rest is informational on its own; it is still reported because
	// every threshold breach has to surface.
	if snap.RestStreak > cfg.MaxRestStreak {
		add(schema.RuleExcessRest, schema.SeverityInfo, float64(snap.RestStreak), float64(cfg.MaxRestStreak),
			fmt.Sprintf("rest streak of %d days exceeds the limit of %d days", snap.RestStreak, cfg.MaxRestStreak))
	}

	// Share rules are suppressed entirely when the share is undefined; a dog
	// with no records in the window must not raise a false underuse alert.
	if snap.ShareDefined {
		if snap.WorkShare > cfg.MaxWorkShare {
			add(schema.RuleOveruseShare, scaleSeverity(snap.WorkShare, cfg.MaxWorkShare), snap.WorkShare, cfg.MaxWorkShare,
				fmt.Sprintf("work share of %.2f exceeds the limit of %.2f", snap.WorkShare, cfg.MaxWorkShare))
		}
		if snap.WorkShare < cfg.MinWorkShare {
			add(schema.RuleUnderuseShare, schema.SeverityInfo, snap.WorkShare, cfg.MinWorkShare,
				fmt.Sprintf("work share of %.2f is below the minimum of %.2f", snap.WorkShare, cfg.MinWorkShare))
		}
	}

	if snap.Rolling7 > cfg.MaxRolling7 {
		add(schema.RuleOverload, scaleSeverity(snap.Rolling7, cfg.MaxRolling7), snap.Rolling7, cfg.MaxRolling7,
			fmt.Sprintf("rolling 7-day load of %.1f exceeds the limit of %.1f", snap.Rolling7, cfg.MaxRolling7))
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := schema.SeverityRank[alerts[i].Severity], schema.SeverityRank[alerts[j].Severity]
		if ri != rj {
			return ri > rj
		}
		return alerts[i].Rule < alerts[j].Rule
	})
	return alerts
}

// Severity bands for threshold overshoot, relative to the threshold.
const (
	warningOvershoot  = 1.2
	criticalOvershoot = 1.5
)

// scaleSeverity maps how far an observation landed past its threshold onto a
// severity band. A non-positive threshold cannot express an overshoot ratio,
// so any breach of it is treated as critical.
func scaleSeverity(observed, threshold float64) schema.Severity {
	if threshold <= 0 {
		return schema.SeverityCritical
	}
	switch ratio := observed / threshold; {
	case ratio >= criticalOvershoot:
		return schema.SeverityCritical
	case ratio >= warningOvershoot:
		return schema.SeverityWarning
	default:
		return schema.SeverityInfo
	}
}
