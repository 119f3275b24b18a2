//go:build basic

package integration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMusherWithSQLite drives the default SQLite backend end to end.
// HOME is pointed at a temp dir so the database file never touches the
// real one.
func TestMusherWithSQLite(t *testing.T) {
	env := []string{"HOME=" + t.TempDir()}

	runs := [][]string{
		{"roster", "add", "--dog", "balto", "--name", "Balto", "--age", "6", "--role", "lead"},
		{"record", "add", "--dog", "balto", "--date", "2026-02-09", "--distance", "18.5"},
		{"record", "add", "--dog", "balto", "--date", "2026-02-10", "--distance", "20"},
		{"record", "add", "--dog", "togo", "--date", "2026-02-10", "--rest"},
		{"roster"},
		{"indicators", "--date", "2026-02-10"},
		{"alerts", "--date", "2026-02-10"},
		{"team", "--date", "2026-02-10", "--size", "1", "--explain"},
		{"record", "export"},
		{"rules"},
		{"store", "status"},
		{"store", "clear"},
	}
	for _, args := range runs {
		require.NoError(t, runMusherCommand(t, env, args...))
	}
}
