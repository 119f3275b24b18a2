package contract

import (
	"testing"
	"time"

	"github.com/kennelops/musher/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns a raw input that passes validation as-is.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Date:         "2026-02-10",
		Size:         6,
		Output:       "text",
		Precision:    1,
		Color:        "no",
		StoreBackend: "memory",
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	input := validInput()

	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), cfg.Date)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.MemoryBackend, cfg.StoreBackend)
	assert.Equal(t, 6, cfg.TeamSize)
	assert.False(t, cfg.UseColors)
	require.NotNil(t, cfg.Rules)
	assert.Equal(t, schema.DefaultMaxWorkStreak, cfg.Rules.MaxWorkStreak)
	assert.True(t, cfg.Rules.Blocking(schema.RuleOverload))
}

func TestProcessDateDefaultsToToday(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.Date = ""

	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, schema.Day(time.Now().UTC()), cfg.Date)
}

func TestProcessDateInvalid(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.Date = "Feb 10 2026"

	assert.Error(t, ProcessAndValidate(cfg, input))
}

func TestProcessOutput(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		outputFile string
		wantErr    bool
		wantMode   schema.OutputMode
	}{
		{name: "text", output: "text", wantMode: schema.TextOut},
		{name: "uppercase json", output: "JSON", wantMode: schema.JSONOut},
		{name: "csv", output: "csv", wantMode: schema.CSVOut},
		{name: "parquet with file", output: "parquet", outputFile: "out.parquet", wantMode: schema.ParquetOut},
		{name: "parquet without file", output: "parquet", wantErr: true},
		{name: "unknown mode", output: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			input := validInput()
			input.Output = tt.output
			input.OutputFile = tt.outputFile

			err := ProcessAndValidate(cfg, input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, cfg.Output)
		})
	}
}

func TestProcessOutputPrecisionClamped(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "below range", in: 0, want: 1},
		{name: "in range", in: 2, want: 2},
		{name: "above range", in: 9, want: MaxPrecision},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			input := validInput()
			input.Precision = tt.in

			require.NoError(t, ProcessAndValidate(cfg, input))
			assert.Equal(t, tt.want, cfg.Precision)
		})
	}
}

func TestProcessStoreBackend(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		connStr string
		wantErr bool
	}{
		{name: "sqlite needs no connection", backend: "sqlite"},
		{name: "memory needs no connection", backend: "memory"},
		{name: "mysql valid", backend: "mysql", connStr: "root:pw@tcp(localhost:3306)/musher"},
		{name: "mysql missing connection", backend: "mysql", wantErr: true},
		{name: "mysql missing tcp host", backend: "mysql", connStr: "root:pw/musher", wantErr: true},
		{name: "postgresql valid", backend: "postgresql", connStr: "host=localhost dbname=musher"},
		{name: "postgresql missing dbname", backend: "postgresql", connStr: "host=localhost", wantErr: true},
		{name: "unknown backend", backend: "redis", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			input := validInput()
			input.StoreBackend = tt.backend
			input.StoreDBConnect = tt.connStr

			err := ProcessAndValidate(cfg, input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessRulesOverrides(t *testing.T) {
	maxStreak := 6
	maxRolling := 150.0
	cfg := &Config{}
	input := validInput()
	input.Rules = RulesRawInput{
		MaxWorkStreak:      &maxStreak,
		MaxRolling7:        &maxRolling,
		BlockingAlertKinds: []string{"overload", "long_work_streak"},
	}

	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, 6, cfg.Rules.MaxWorkStreak)
	assert.Equal(t, 150.0, cfg.Rules.MaxRolling7)
	assert.True(t, cfg.Rules.Blocking(schema.RuleLongWorkStreak))
	// Untouched settings keep their defaults
	assert.Equal(t, schema.DefaultMaxRestStreak, cfg.Rules.MaxRestStreak)
}

func TestProcessRulesInvalid(t *testing.T) {
	badStreak := 0
	cfg := &Config{}
	input := validInput()
	input.Rules = RulesRawInput{MaxWorkStreak: &badStreak}

	err := ProcessAndValidate(cfg, input)
	assert.ErrorContains(t, err, "invalid rule config")
}

func TestProcessTeamSizeTooLarge(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.Size = MaxTeamSize + 1

	assert.Error(t, ProcessAndValidate(cfg, input))
}

func TestProcessExclusions(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.Exclude = " balto, togo ,,fritz "

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []string{"balto", "togo", "fritz"}, cfg.Exclusions)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.Exclude = "balto"
	require.NoError(t, ProcessAndValidate(cfg, input))

	clone := cfg.Clone()
	clone.Exclusions[0] = "togo"
	clone.Rules.MaxWorkStreak = 99

	assert.Equal(t, "balto", cfg.Exclusions[0])
	assert.Equal(t, schema.DefaultMaxWorkStreak, cfg.Rules.MaxWorkStreak)
}
