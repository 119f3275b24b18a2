package mcp_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/kennelops/musher/internal/contract"
	mcp_internal "github.com/kennelops/musher/internal/mcp"
	"github.com/kennelops/musher/internal/recstore"
	"github.com/kennelops/musher/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seededManager builds an in-memory store with a tiny roster: D1 has been
// working daily, D2 is rested.
func seededManager(t *testing.T, asOf time.Time) contract.StoreManager {
	t.Helper()
	ctx := context.Background()
	store := recstore.NewMemoryStore()

	require.NoError(t, store.UpsertDog(ctx, schema.Dog{ID: "D1", Name: "Balto", Age: 4, Role: "lead"}))
	require.NoError(t, store.UpsertDog(ctx, schema.Dog{ID: "D2", Name: "Togo", Age: 6, Role: "wheel"}))

	for i := range 6 {
		date := asOf.AddDate(0, 0, -i)
		_, err := store.UpsertRecord(ctx, schema.WorkRecord{DogID: "D1", Date: date, Worked: true, Distance: 15})
		require.NoError(t, err)
		_, err = store.UpsertRecord(ctx, schema.WorkRecord{DogID: "D2", Date: date, Worked: false})
		require.NoError(t, err)
	}

	mgr := &recstore.RecordStoreManager{}
	mgr.SetRecordStore(store)
	return mgr
}

func baseConfig(asOf time.Time) *contract.Config {
	return &contract.Config{
		Date:      asOf,
		Precision: 1,
		Output:    schema.TextOut,
		Rules:     schema.DefaultRuleConfig(),
	}
}

func TestMCPServerTools(t *testing.T) {
	asOf := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	mgr := seededManager(t, asOf)
	s := mcp_internal.NewMCPServer(baseConfig(asOf), mgr)
	ctx := context.Background()

	t.Run("get_indicators returns snapshots", func(t *testing.T) {
		tool := s.GetTool("get_indicators")
		require.NotNil(t, tool, "Tool get_indicators should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_indicators",
				Arguments: map[string]any{"date": "2026-02-10"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var snaps []schema.IndicatorSnapshot
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &snaps))
		require.Len(t, snaps, 2)
		assert.Equal(t, "D1", snaps[0].DogID)
		assert.Equal(t, 6, snaps[0].WorkStreak)
		assert.Equal(t, 6, snaps[1].RestStreak)
	})

	t.Run("get_indicators narrows to one dog", func(t *testing.T) {
		tool := s.GetTool("get_indicators")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_indicators",
				Arguments: map[string]any{"date": "2026-02-10", "dog": "D2"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var snaps []schema.IndicatorSnapshot
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &snaps))
		require.Len(t, snaps, 1)
		assert.Equal(t, "D2", snaps[0].DogID)
	})

	t.Run("get_alerts flags the overworked dog", func(t *testing.T) {
		tool := s.GetTool("get_alerts")
		require.NotNil(t, tool, "Tool get_alerts should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_alerts",
				Arguments: map[string]any{"date": "2026-02-10"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var alerts []schema.Alert
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &alerts))
		require.NotEmpty(t, alerts)

		kindsByDog := make(map[string]map[schema.RuleName]bool)
		for _, a := range alerts {
			if kindsByDog[a.DogID] == nil {
				kindsByDog[a.DogID] = make(map[schema.RuleName]bool)
			}
			kindsByDog[a.DogID][a.Rule] = true
		}
		assert.True(t, kindsByDog["D1"][schema.RuleLongWorkStreak], "A 6-day streak should exceed the default limit")
		assert.True(t, kindsByDog["D2"][schema.RuleUnderuseShare], "A fully rested dog has a defined zero share")
	})

	t.Run("build_team prefers the rested dog", func(t *testing.T) {
		tool := s.GetTool("build_team")
		require.NotNil(t, tool, "Tool build_team should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "build_team",
				Arguments: map[string]any{"size": 1.0, "date": "2026-02-10"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var assignment schema.TeamAssignment
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &assignment))
		assert.Equal(t, []string{"D2"}, assignment.DogIDs)
		assert.False(t, assignment.Underfilled)
	})

	t.Run("invalid date yields tool error", func(t *testing.T) {
		tool := s.GetTool("get_indicators")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_indicators",
				Arguments: map[string]any{"date": "02/10/2026"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid date")
	})

	t.Run("build_team rejects non-positive size", func(t *testing.T) {
		tool := s.GetTool("build_team")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "build_team",
				Arguments: map[string]any{"size": 0.0, "date": "2026-02-10"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError, "The response should indicate an error state")
	})
}
