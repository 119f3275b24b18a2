package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/kennelops/musher/internal/contract"
	"github.com/kennelops/musher/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAsOf = time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

func testSnaps() []schema.IndicatorSnapshot {
	return []schema.IndicatorSnapshot{
		{DogID: "D1", AsOf: testAsOf, WorkStreak: 3, RestStreak: 0, WorkShare: 0.57, ShareDefined: true, RecordedDays: 6, Rolling7: 84.5},
		{DogID: "D2", AsOf: testAsOf, WorkStreak: 0, RestStreak: 4, ShareDefined: false},
	}
}

func testRoster() []schema.Dog {
	return []schema.Dog{
		{ID: "D1", Name: "Balto", Age: 4, Role: "lead"},
		{ID: "D2", Name: "Togo", Age: 6, Role: "wheel"},
	}
}

func TestWriteIndicatorJSON(t *testing.T) {
	var buf bytes.Buffer
	err := writeIndicatorJSON(&buf, testSnaps())
	require.NoError(t, err)

	var result []map[string]any
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "D1", result[0]["dog_id"])
	assert.Equal(t, float64(3), result[0]["work_streak_len"])
	assert.Equal(t, true, result[0]["share_defined"])
	assert.Equal(t, false, result[1]["share_defined"])
}

func TestWriteIndicatorCSV(t *testing.T) {
	fmtFloat, _ := createFormatters(2)

	var buf bytes.Buffer
	err := writeIndicatorCSV(&buf, testSnaps(), fmtFloat)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 rows

	assert.Contains(t, lines[0], "dog_id")
	assert.Contains(t, lines[0], "rolling_7d")
	assert.Contains(t, lines[1], "D1")
	assert.Contains(t, lines[1], "2026-02-10")
	assert.Contains(t, lines[1], "0.57")
	assert.Contains(t, lines[2], shareNA, "Undefined share should print as n/a, not zero")
}

func TestWriteIndicatorTable(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	cfg := &contract.Config{Output: schema.TextOut, Precision: 2}
	names := rosterNames(testRoster())

	var buf bytes.Buffer
	err := writeIndicatorTable(&buf, testSnaps(), names, cfg, fmtFloat, 5*time.Millisecond)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2026-02-10")
	assert.Contains(t, out, "Balto")
	assert.Contains(t, out, "Togo")
	assert.Contains(t, out, shareNA)
	assert.Contains(t, out, "Computed 2 snapshot(s)")
}

func TestWriteIndicatorTableEmpty(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	cfg := &contract.Config{Output: schema.TextOut, Precision: 2}

	var buf bytes.Buffer
	err := writeIndicatorTable(&buf, nil, nil, cfg, fmtFloat, time.Millisecond)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No dogs in roster")
}

func TestRosterNames(t *testing.T) {
	names := rosterNames(testRoster())
	assert.Equal(t, "Balto", names["D1"])
	assert.Equal(t, "Togo", names["D2"])
	assert.Empty(t, names["D9"])
}
