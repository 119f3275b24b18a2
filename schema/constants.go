package schema

// Custom string types for type safety.
type (
	// RuleName identifies one workload rule. Alert kinds are rule names.
	RuleName string

	// Severity represents how far past a threshold an observation landed.
	Severity string

	// OutputMode represents the format of the output.
	OutputMode string

	// StoreBackend represents the database backend for the record store.
	StoreBackend string
)

// All workload rules evaluated by the rule engine.
const (
	RuleLongWorkStreak RuleName = "long_work_streak"
	RuleExcessRest     RuleName = "excess_rest"
	RuleOveruseShare   RuleName = "overuse_share"
	RuleUnderuseShare  RuleName = "underuse_share"
	RuleOverload       RuleName = "overload"
)

// All severities supported, mildest first.
const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite" // default
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	MemoryBackend     StoreBackend = "memory"
)

// AllRuleNames returns every rule in evaluation order.
var AllRuleNames = []RuleName{
	RuleLongWorkStreak,
	RuleExcessRest,
	RuleOveruseShare,
	RuleUnderuseShare,
	RuleOverload,
}

// SeverityRank orders severities for sorting, higher is more severe.
var SeverityRank = map[Severity]int{
	SeverityInfo:     1,
	SeverityWarning:  2,
	SeverityCritical: 3,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	MemoryBackend:     {},
}

// ValidRuleNames lists all valid rule names.
var ValidRuleNames = map[RuleName]struct{}{
	RuleLongWorkStreak: {},
	RuleExcessRest:     {},
	RuleOveruseShare:   {},
	RuleUnderuseShare:  {},
	RuleOverload:       {},
}
