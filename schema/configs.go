package schema

import (
	"fmt"
	"maps"
	"sort"
)

// Default rule thresholds and fatigue weights.
const (
	DefaultMaxWorkStreak        = 4
	DefaultMaxRestStreak        = 7
	DefaultMinWorkShare         = 0.15
	DefaultMaxWorkShare         = 0.75
	DefaultMaxRolling7          = 120.0
	DefaultFatigueWeightStreak  = 1.0
	DefaultFatigueWeightRolling = 1.0
	DefaultShareWindow          = 7
)

// RuleConfig holds every tunable threshold and weight the rule engine and team
// builder read. Callers pass it explicitly into each call; nothing in the core
// looks thresholds up from ambient state, so a user-initiated change is always
// picked up by the next computation.
type RuleConfig struct {
	MaxWorkStreak        int
	MaxRestStreak        int
	MinWorkShare         float64
	MaxWorkShare         float64
	MaxRolling7          float64
	FatigueWeightStreak  float64
	FatigueWeightRolling float64
	ShareWindow          int

	// BlockingAlertKinds marks alert kinds that hard-exclude a dog from
	// team selection for the day.
	BlockingAlertKinds map[RuleName]struct{}
}

// DefaultRuleConfig returns a RuleConfig with all documented defaults.
// Overload alerts block team selection by default.
func DefaultRuleConfig() *RuleConfig {
	return &RuleConfig{
		MaxWorkStreak:        DefaultMaxWorkStreak,
		MaxRestStreak:        DefaultMaxRestStreak,
		MinWorkShare:         DefaultMinWorkShare,
		MaxWorkShare:         DefaultMaxWorkShare,
		MaxRolling7:          DefaultMaxRolling7,
		FatigueWeightStreak:  DefaultFatigueWeightStreak,
		FatigueWeightRolling: DefaultFatigueWeightRolling,
		ShareWindow:          DefaultShareWindow,
		BlockingAlertKinds: map[RuleName]struct{}{
			RuleOverload: {},
		},
	}
}

// Clone returns a deep copy of the RuleConfig.
func (c *RuleConfig) Clone() *RuleConfig {
	clone := *c
	if c.BlockingAlertKinds != nil {
		clone.BlockingAlertKinds = make(map[RuleName]struct{}, len(c.BlockingAlertKinds))
		maps.Copy(clone.BlockingAlertKinds, c.BlockingAlertKinds)
	}
	return &clone
}

// Blocking reports whether the given alert kind hard-excludes a dog from
// team selection.
func (c *RuleConfig) Blocking(rule RuleName) bool {
	_, ok := c.BlockingAlertKinds[rule]
	return ok
}

// Validate checks the config for values the core cannot work with.
func (c *RuleConfig) Validate() error {
	if c.MaxWorkStreak < 1 {
		return fmt.Errorf("max_work_streak must be at least 1, got %d", c.MaxWorkStreak)
	}
	if c.MaxRestStreak < 1 {
		return fmt.Errorf("max_rest_streak must be at least 1, got %d", c.MaxRestStreak)
	}
	if c.MinWorkShare < 0 || c.MinWorkShare > 1 {
		return fmt.Errorf("min_work_share must be within [0,1], got %g", c.MinWorkShare)
	}
	if c.MaxWorkShare < 0 || c.MaxWorkShare > 1 {
		return fmt.Errorf("max_work_share must be within [0,1], got %g", c.MaxWorkShare)
	}
	if c.MinWorkShare > c.MaxWorkShare {
		return fmt.Errorf("min_work_share %g exceeds max_work_share %g", c.MinWorkShare, c.MaxWorkShare)
	}
	if c.MaxRolling7 < 0 {
		return fmt.Errorf("max_rolling_7d must be non-negative, got %g", c.MaxRolling7)
	}
	if c.FatigueWeightStreak < 0 || c.FatigueWeightRolling < 0 {
		return fmt.Errorf("fatigue weights must be non-negative, got streak=%g rolling=%g",
			c.FatigueWeightStreak, c.FatigueWeightRolling)
	}
	if c.ShareWindow < 1 {
		return fmt.Errorf("share window must be at least 1 day, got %d", c.ShareWindow)
	}
	for kind := range c.BlockingAlertKinds {
		if _, ok := ValidRuleNames[kind]; !ok {
			return fmt.Errorf("unknown blocking alert kind %q", kind)
		}
	}
	return nil
}

// Keys enumerates the full configuration surface as name/value pairs, sorted
// by name, for display and export.
func (c *RuleConfig) Keys() []ConfigKey {
	blocking := make([]string, 0, len(c.BlockingAlertKinds))
	for kind := range c.BlockingAlertKinds {
		blocking = append(blocking, string(kind))
	}
	sort.Strings(blocking)

	keys := []ConfigKey{
		{Name: "blocking_alert_kinds", Value: fmt.Sprintf("%v", blocking)},
		{Name: "fatigue_weight_rolling", Value: fmt.Sprintf("%g", c.FatigueWeightRolling)},
		{Name: "fatigue_weight_streak", Value: fmt.Sprintf("%g", c.FatigueWeightStreak)},
		{Name: "max_rest_streak", Value: fmt.Sprintf("%d", c.MaxRestStreak)},
		{Name: "max_rolling_7d", Value: fmt.Sprintf("%g", c.MaxRolling7)},
		{Name: "max_work_share", Value: fmt.Sprintf("%g", c.MaxWorkShare)},
		{Name: "max_work_streak", Value: fmt.Sprintf("%d", c.MaxWorkStreak)},
		{Name: "min_work_share", Value: fmt.Sprintf("%g", c.MinWorkShare)},
		{Name: "share_window", Value: fmt.Sprintf("%d", c.ShareWindow)},
	}
	return keys
}

// ConfigKey is one enumerable configuration entry.
type ConfigKey struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
