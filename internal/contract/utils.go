package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/kennelops/musher/schema"
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)    // active risk, act today
	WarningColor  = color.New(color.FgYellow, color.Bold) // standard caution
	InfoColor     = color.New(color.FgCyan)               // informational signal
	OKColor       = color.New(color.FgGreen)              // nothing to do
)

// GetSeverityLabel returns the severity as a display label, colored for
// console output when useColors is set.
func GetSeverityLabel(sev schema.Severity, useColors bool) string {
	text := strings.ToUpper(string(sev))
	if !useColors {
		return text
	}
	switch sev {
	case schema.SeverityCritical:
		return CriticalColor.Sprint(text)
	case schema.SeverityWarning:
		return WarningColor.Sprint(text)
	default:
		return InfoColor.Sprint(text)
	}
}

// SplitList splits a comma-separated flag value into trimmed, non-empty
// entries.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseBoolish interprets yes/no style flag values.
func ParseBoolish(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return fallback
	}
}

// GetStoreDBFilePath returns the path to the SQLite DB file for the record
// store.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".musher.db"
	}
	return filepath.Join(homeDir, ".musher.db")
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}
