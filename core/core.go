// Package core has the analytical heart of musher: indicator computation,
// rule evaluation and team building, plus the entry points that wire the
// record store to the output layer.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/kennelops/musher/internal/contract"
	"github.com/kennelops/musher/internal/outwriter"
	"github.com/kennelops/musher/schema"
)

// GetIndicatorResults computes a fresh snapshot per dog as of cfg.Date. The
// snapshots come back in roster order.
func GetIndicatorResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.IndicatorSnapshot, []schema.Dog, error) {
	roster, snaps, err := rosterSnapshots(ctx, cfg, mgr.GetRecordStore())
	if err != nil {
		return nil, nil, err
	}

	ordered := make([]schema.IndicatorSnapshot, 0, len(roster))
	for _, dog := range roster {
		ordered = append(ordered, snaps[dog.ID])
	}
	return ordered, roster, nil
}

// GetAlertResults evaluates every rule against every dog's snapshot as of
// cfg.Date. Alerts come back grouped by roster order, most severe first
// within each dog.
func GetAlertResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]schema.Alert, []schema.Dog, error) {
	roster, snaps, err := rosterSnapshots(ctx, cfg, mgr.GetRecordStore())
	if err != nil {
		return nil, nil, err
	}

	var alerts []schema.Alert
	for _, dog := range roster {
		alerts = append(alerts, EvaluateRules(dog.ID, snaps[dog.ID], cfg.Rules)...)
	}
	return alerts, roster, nil
}

// GetTeamResult builds the team assignment for cfg.Date. Alerts feed back
// into selection: dogs with a blocking alert kind are dropped from the
// candidate pool before ranking.
func GetTeamResult(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.TeamAssignment, []schema.Dog, error) {
	roster, snaps, err := rosterSnapshots(ctx, cfg, mgr.GetRecordStore())
	if err != nil {
		return schema.TeamAssignment{}, nil, err
	}

	alertsByDog := make(map[string][]schema.Alert, len(roster))
	for _, dog := range roster {
		if alerts := EvaluateRules(dog.ID, snaps[dog.ID], cfg.Rules); len(alerts) > 0 {
			alertsByDog[dog.ID] = alerts
		}
	}

	assignment, err := BuildTeam(cfg.Date, roster, cfg.TeamSize, alertsByDog, snaps, cfg.Exclusions, cfg.Rules)
	if err != nil {
		return schema.TeamAssignment{}, nil, err
	}
	return assignment, roster, nil
}

// ExecuteIndicators computes snapshots and prints them. It serves as the
// main entry point for the 'indicators' command.
func ExecuteIndicators(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	snaps, roster, err := GetIndicatorResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteIndicators(snaps, roster, cfg, time.Since(start))
}

// ExecuteAlerts evaluates the rules and prints the triggered alerts. It
// serves as the main entry point for the 'alerts' command.
func ExecuteAlerts(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	alerts, roster, err := GetAlertResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteAlerts(alerts, roster, cfg, time.Since(start))
}

// ExecuteTeam builds the team assignment and prints it. It serves as the
// main entry point for the 'team' command.
func ExecuteTeam(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	assignment, roster, err := GetTeamResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.WriteAssignment(assignment, roster, cfg, time.Since(start))
}

// ExecuteRoster lists the dogs on the roster. It serves as the main entry
// point for the 'roster' command.
func ExecuteRoster(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	roster, err := mgr.GetRecordStore().Roster(ctx)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}
	return outwriter.WriteRoster(roster, cfg, time.Since(start))
}

// ExecuteRules displays the active rule thresholds and fatigue weights.
// This is a static display that does not touch the record store.
func ExecuteRules(_ context.Context, cfg *contract.Config) error {
	return outwriter.WriteRules(cfg.Rules, cfg)
}

// rosterSnapshots loads the roster (optionally narrowed to one dog) and
// computes one snapshot per dog from its full history.
func rosterSnapshots(ctx context.Context, cfg *contract.Config, store contract.RecordStore) ([]schema.Dog, map[string]schema.IndicatorSnapshot, error) {
	roster, err := store.Roster(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading roster: %w", err)
	}
	if cfg.DogFilter != "" {
		var narrowed []schema.Dog
		for _, dog := range roster {
			if dog.ID == cfg.DogFilter {
				narrowed = append(narrowed, dog)
			}
		}
		if len(narrowed) == 0 {
			return nil, nil, fmt.Errorf("dog %s not found in roster", cfg.DogFilter)
		}
		roster = narrowed
	}

	snaps := make(map[string]schema.IndicatorSnapshot, len(roster))
	for _, dog := range roster {
		history, err := store.History(ctx, dog.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("loading history for dog %s: %w", dog.ID, err)
		}
		snap, err := ComputeSnapshot(dog.ID, cfg.Date, history, cfg.Rules)
		if err != nil {
			return nil, nil, err
		}
		snaps[dog.ID] = snap
	}
	return roster, snaps, nil
}
