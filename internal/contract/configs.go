package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/kennelops/musher/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	MaxPrecision     = 2
	DefaultTeamSize  = 6
	MaxTeamSize      = 50
)

// Config holds the validated runtime configuration for one command run.
// Commands read from this struct only; the raw, unvalidated inputs live in
// ConfigRawInput.
type Config struct {
	Date       time.Time // as-of date for indicators, alerts and team building
	DogFilter  string    // restrict indicator output to one dog ID
	TeamSize   int
	Exclusions []string // manually excluded dog IDs
	Explain    bool     // print fatigue breakdowns and pool diagnostics

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	UseColors  bool

	StoreBackend   schema.StoreBackend
	StoreDBConnect string // please use env var as this is plaintext

	// Rules is re-resolved from viper on every run, so a threshold edit in
	// the config file is live on the next invocation.
	Rules *schema.RuleConfig
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	Date           string `mapstructure:"date"`
	Dog            string `mapstructure:"dog"`
	Size           int    `mapstructure:"size"`
	Exclude        string `mapstructure:"exclude"`
	Explain        bool   `mapstructure:"explain"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	// --- Rule thresholds and weights from the config file ---
	Rules RulesRawInput `mapstructure:"rules"`
}

// RulesRawInput holds threshold overrides from the YAML config file. Pointer
// fields distinguish "unset" from an explicit zero.
type RulesRawInput struct {
	MaxWorkStreak        *int     `mapstructure:"max_work_streak"`
	MaxRestStreak        *int     `mapstructure:"max_rest_streak"`
	MinWorkShare         *float64 `mapstructure:"min_work_share"`
	MaxWorkShare         *float64 `mapstructure:"max_work_share"`
	MaxRolling7          *float64 `mapstructure:"max_rolling_7d"`
	FatigueWeightStreak  *float64 `mapstructure:"fatigue_weight_streak"`
	FatigueWeightRolling *float64 `mapstructure:"fatigue_weight_rolling"`
	ShareWindow          *int     `mapstructure:"share_window"`
	BlockingAlertKinds   []string `mapstructure:"blocking_alert_kinds"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := processDate(cfg, input); err != nil {
		return err
	}
	if err := processOutput(cfg, input); err != nil {
		return err
	}
	if err := processStoreBackend(cfg, input); err != nil {
		return err
	}
	if err := processRules(cfg, input); err != nil {
		return err
	}

	cfg.DogFilter = strings.TrimSpace(input.Dog)
	cfg.Exclusions = SplitList(input.Exclude)
	cfg.Explain = input.Explain
	cfg.TeamSize = input.Size
	if cfg.TeamSize > MaxTeamSize {
		return fmt.Errorf("team size cannot exceed %d, got %d", MaxTeamSize, cfg.TeamSize)
	}
	return nil
}

// processDate resolves the as-of date, defaulting to today.
func processDate(cfg *Config, input *ConfigRawInput) error {
	if input.Date == "" {
		cfg.Date = schema.Day(time.Now().UTC())
		return nil
	}
	day, err := schema.ParseDay(input.Date)
	if err != nil {
		return err
	}
	cfg.Date = day
	return nil
}

// processOutput validates the output mode, file and formatting switches.
func processOutput(cfg *Config, input *ConfigRawInput) error {
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode %q, must be text, csv, json or parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && input.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	cfg.OutputFile = input.OutputFile

	cfg.Precision = input.Precision
	if cfg.Precision < 1 {
		cfg.Precision = 1
	}
	if cfg.Precision > MaxPrecision {
		cfg.Precision = MaxPrecision
	}

	cfg.UseColors = ParseBoolish(input.Color, true)
	return nil
}

// processStoreBackend validates the store backend and its connection string.
func processStoreBackend(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.StoreBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend %q, must be sqlite, mysql, postgresql or memory", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateStoreConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// ValidateStoreConnectionString validates the format of database connection
// strings for the MySQL and PostgreSQL backends.
func ValidateStoreConnectionString(backend schema.StoreBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// processRules layers config-file overrides over the rule defaults and
// validates the result.
func processRules(cfg *Config, input *ConfigRawInput) error {
	rules := schema.DefaultRuleConfig()
	raw := input.Rules

	if raw.MaxWorkStreak != nil {
		rules.MaxWorkStreak = *raw.MaxWorkStreak
	}
	if raw.MaxRestStreak != nil {
		rules.MaxRestStreak = *raw.MaxRestStreak
	}
	if raw.MinWorkShare != nil {
		rules.MinWorkShare = *raw.MinWorkShare
	}
	if raw.MaxWorkShare != nil {
		rules.MaxWorkShare = *raw.MaxWorkShare
	}
	if raw.MaxRolling7 != nil {
		rules.MaxRolling7 = *raw.MaxRolling7
	}
	if raw.FatigueWeightStreak != nil {
		rules.FatigueWeightStreak = *raw.FatigueWeightStreak
	}
	if raw.FatigueWeightRolling != nil {
		rules.FatigueWeightRolling = *raw.FatigueWeightRolling
	}
	if raw.ShareWindow != nil {
		rules.ShareWindow = *raw.ShareWindow
	}
	if raw.BlockingAlertKinds != nil {
		rules.BlockingAlertKinds = make(map[schema.RuleName]struct{}, len(raw.BlockingAlertKinds))
		for _, kind := range raw.BlockingAlertKinds {
			rules.BlockingAlertKinds[schema.RuleName(strings.TrimSpace(kind))] = struct{}{}
		}
	}

	if err := rules.Validate(); err != nil {
		return fmt.Errorf("invalid rule config: %w", err)
	}
	cfg.Rules = rules
	return nil
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Exclusions != nil {
		clone.Exclusions = make([]string, len(c.Exclusions))
		copy(clone.Exclusions, c.Exclusions)
	}
	if c.Rules != nil {
		clone.Rules = c.Rules.Clone()
	}
	return &clone
}
