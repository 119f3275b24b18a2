package core

import (
	"fmt"
	"testing"

	"github.com/kennelops/musher/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapAt builds a snapshot with a defined share for rule tests.
func snapAt(workStreak, restStreak int, share, rolling float64) schema.IndicatorSnapshot {
	return schema.IndicatorSnapshot{
		DogID:        "D1",
		AsOf:         day(14),
		WorkStreak:   workStreak,
		RestStreak:   restStreak,
		WorkShare:    share,
		ShareDefined: true,
		Rolling7:     rolling,
	}
}

// TestEvaluateRulesSingleBreach: a 5-day streak against a limit of 4 yields
// exactly one long-work-streak alert embedding both literals.
func TestEvaluateRulesSingleBreach(t *testing.T) {
	cfg := schema.DefaultRuleConfig()
	cfg.MaxWorkStreak = 4

	alerts := EvaluateRules("D1", snapAt(5, 0, 0.5, 50), cfg)

	require.Len(t, alerts, 1)
	assert.Equal(t, schema.RuleLongWorkStreak, alerts[0].Rule)
	assert.Equal(t, 5.0, alerts[0].Observed)
	assert.Equal(t, 4.0, alerts[0].Threshold)
	assert.Contains(t, alerts[0].Explanation, "5")
	assert.Contains(t, alerts[0].Explanation, "4")
}

// TestEvaluateRulesAllKinds triggers every rule at once.
func TestEvaluateRulesAllKinds(t *testing.T) {
	cfg := schema.DefaultRuleConfig()

	t.Run("overuse side", func(t *testing.T) {
		alerts := EvaluateRules("D1", snapAt(6, 0, 0.9, 200), cfg)
		rules := make([]schema.RuleName, 0, len(alerts))
		for _, a := range alerts {
			rules = append(rules, a.Rule)
		}
		assert.ElementsMatch(t, []schema.RuleName{
			schema.RuleLongWorkStreak, schema.RuleOveruseShare, schema.RuleOverload,
		}, rules)
	})

	t.Run("underuse side", func(t *testing.T) {
		alerts := EvaluateRules("D1", snapAt(0, 10, 0.05, 0), cfg)
		rules := make([]schema.RuleName, 0, len(alerts))
		for _, a := range alerts {
			rules = append(rules, a.Rule)
		}
		assert.ElementsMatch(t, []schema.RuleName{
			schema.RuleExcessRest, schema.RuleUnderuseShare,
		}, rules)
	})

	t.Run("quiet snapshot raises nothing", func(t *testing.T) {
		assert.Empty(t, EvaluateRules("D1", snapAt(2, 0, 0.4, 60), cfg))
	})
}

// TestEvaluateRulesUndefinedShare ensures share rules stay silent without
// data instead of raising a false underuse alert.
func TestEvaluateRulesUndefinedShare(t *testing.T) {
	cfg := schema.DefaultRuleConfig()
	snap := schema.IndicatorSnapshot{DogID: "D1", AsOf: day(14)} // new dog, nothing recorded

	alerts := EvaluateRules("D1", snap, cfg)
	for _, a := range alerts {
		assert.NotEqual(t, schema.RuleUnderuseShare, a.Rule)
		assert.NotEqual(t, schema.RuleOveruseShare, a.Rule)
	}
}

// TestEvaluateRulesSeverityScaling tests the overshoot bands.
func TestEvaluateRulesSeverityScaling(t *testing.T) {
	tests := []struct {
		name    string
		rolling float64
		want    schema.Severity
	}{
		{name: "barely over", rolling: 125, want: schema.SeverityInfo},
		{name: "twenty percent over", rolling: 150, want: schema.SeverityWarning},
		{name: "fifty percent over", rolling: 185, want: schema.SeverityCritical},
	}

	cfg := schema.DefaultRuleConfig() // MaxRolling7 = 120
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := EvaluateRules("D1", snapAt(0, 0, 0.5, tt.rolling), cfg)
			require.Len(t, alerts, 1)
			assert.Equal(t, tt.want, alerts[0].Severity)
		})
	}
}

// TestEvaluateRulesOrdering ensures deterministic presentation: severity
// descending, then rule name.
func TestEvaluateRulesOrdering(t *testing.T) {
	cfg := schema.DefaultRuleConfig()
	alerts := EvaluateRules("D1", snapAt(20, 0, 0.05, 500), cfg)
	require.GreaterOrEqual(t, len(alerts), 3)

	for i := 1; i < len(alerts); i++ {
		prev, cur := alerts[i-1], alerts[i]
		if prev.Severity == cur.Severity {
			assert.Less(t, string(prev.Rule), string(cur.Rule))
		} else {
			assert.True(t, schema.MoreSevere(prev.Severity, cur.Severity))
		}
	}
}

// TestEvaluateRulesExplanationRoundTrip checks that the literal observed
// value and threshold embedded in each explanation match the alert fields.
func TestEvaluateRulesExplanationRoundTrip(t *testing.T) {
	cfg := schema.DefaultRuleConfig()
	alerts := EvaluateRules("D1", snapAt(9, 0, 0.91, 173.4), cfg)
	require.NotEmpty(t, alerts)

	for _, a := range alerts {
		switch a.Rule {
		case schema.RuleLongWorkStreak, schema.RuleExcessRest:
			assert.Contains(t, a.Explanation, fmt.Sprintf("%d", int(a.Observed)))
			assert.Contains(t, a.Explanation, fmt.Sprintf("%d", int(a.Threshold)))
		case schema.RuleOveruseShare, schema.RuleUnderuseShare:
			assert.Contains(t, a.Explanation, fmt.Sprintf("%.2f", a.Observed))
			assert.Contains(t, a.Explanation, fmt.Sprintf("%.2f", a.Threshold))
		default:
			assert.Contains(t, a.Explanation, fmt.Sprintf("%.1f", a.Observed))
			assert.Contains(t, a.Explanation, fmt.Sprintf("%.1f", a.Threshold))
		}
	}
}
