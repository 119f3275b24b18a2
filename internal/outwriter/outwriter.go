// Package outwriter has output and writer logic for indicators, alerts and
// team assignments.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// writeWithFile handles the common pattern of opening a file, writing to it
// and cleaning up. An empty path writes to stdout.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	if outputFile == "" {
		return writer(os.Stdout)
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", outputFile, err)
	}
	defer func() { _ = f.Close() }()

	if err := writer(f); err != nil {
		return err
	}
	fmt.Printf("%s to %s\n", successMsg, outputFile)
	return nil
}

// createFormatters returns a float formatter and an int format string for the
// configured precision.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	fmtFloat = func(v float64) string {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}
	intFmt = "%d"
	return fmtFloat, intFmt
}

// terminalWidth returns the detected terminal width, with a conservative
// fallback for pipes and CI.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// truncate shortens a string to at most maxLen bytes, keeping the tail
// visible.
func truncate(s string, maxLen int) string {
	if maxLen < 4 || len(s) <= maxLen {
		return s
	}
	return "..." + s[len(s)-maxLen+3:]
}
