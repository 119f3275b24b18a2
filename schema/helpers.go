package schema

import (
	"fmt"
	"time"
)

// DateFormat is the canonical day representation used in storage, output and
// the wide CSV format.
const DateFormat = "2006-01-02"

// Day truncates a timestamp to midnight UTC. All record dates and as-of dates
// flow through this before comparison, so daily arithmetic is exact.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a midnight-UTC day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return Day(t), nil
}

// FormatDay renders a day in canonical form.
func FormatDay(t time.Time) string {
	return t.Format(DateFormat)
}

// DaysBetween returns the number of whole days from a to b. Negative when b
// precedes a.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// MoreSevere reports whether a outranks b.
func MoreSevere(a, b Severity) bool {
	return SeverityRank[a] > SeverityRank[b]
}
