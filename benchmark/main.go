// Package main provides a performance benchmarking tool for the musher CLI.
// It times the analysis commands against synthetic kennels of increasing size,
// averaging several runs per command and generating CSV output for
// performance analysis and documentation.
//
// Prerequisites:
// - musher binary installed and available in PATH
//
// Usage: go run benchmark/main.go [output-dir]
//
//	output-dir: Directory for generated sheets and results (default: /tmp)
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

// BenchmarkResult holds the averaged timings for one command on one kennel.
type BenchmarkResult struct {
	Kennel  string
	Command string
	AvgTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	OutputDir string
	Timeout   time.Duration
	Runs      int
	Kennels   []KennelSize
}

// KennelSize describes one synthetic dataset.
type KennelSize struct {
	Name string
	Dogs int
	Days int
}

func main() {
	outputDir := "/tmp"
	if len(os.Args) == 2 {
		outputDir = os.Args[1]
	}

	config := BenchmarkConfig{
		OutputDir: outputDir,
		Timeout:   2 * time.Minute,
		Runs:      5,
		Kennels: []KennelSize{
			{Name: "small", Dogs: 12, Days: 30},
			{Name: "medium", Dogs: 48, Days: 180},
			{Name: "large", Dogs: 120, Days: 730},
		},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(config, results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the musher binary exists.
func checkPrerequisites() error {
	if _, err := exec.LookPath("musher"); err != nil {
		return fmt.Errorf("musher binary not found in PATH")
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured kennel sizes.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d kennels, %v timeout, %d runs per command\n",
		len(config.Kennels), config.Timeout, config.Runs)

	for _, kennel := range config.Kennels {
		fmt.Printf("Benchmarking %s kennel (%d dogs x %d days)\n", kennel.Name, kennel.Dogs, kennel.Days)

		// Each kennel gets its own HOME so SQLite stores never collide.
		home, err := os.MkdirTemp(config.OutputDir, "musher-bench-"+kennel.Name+"-*")
		if err != nil {
			fmt.Printf("  Failed to create temp home: %v\n", err)
			continue
		}

		sheetPath := filepath.Join(home, "sheet.csv")
		if err := generateSheet(sheetPath, kennel); err != nil {
			fmt.Printf("  Failed to generate sheet: %v\n", err)
			continue
		}

		if err := runMusher(config, home, "record", "import", "--file", sheetPath); err != nil {
			fmt.Printf("  Failed to import sheet: %v\n", err)
			continue
		}

		asOf := lastDay(kennel)
		commands := [][]string{
			{"indicators", "--date", asOf},
			{"alerts", "--date", asOf},
			{"team", "--date", asOf, "--size", "6"},
		}
		for _, args := range commands {
			results = append(results, runBenchmarkSuite(config, kennel.Name, home, args))
		}

		_ = os.RemoveAll(home)
	}

	return results
}

// runBenchmarkSuite times one command several times and averages the runs.
func runBenchmarkSuite(config BenchmarkConfig, kennel, home string, args []string) BenchmarkResult {
	fmt.Printf("  Running %s (%d runs)\n", args[0], config.Runs)

	var times []float64
	for range config.Runs {
		start := time.Now()
		if err := runMusher(config, home, args...); err != nil {
			break
		}
		times = append(times, time.Since(start).Seconds())
	}

	avgTime := "TIMEOUT"
	if len(times) == config.Runs {
		var sum float64
		for _, t := range times {
			sum += t
		}
		avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}
	fmt.Printf("    Average: %s\n", avgTime)

	return BenchmarkResult{Kennel: kennel, Command: args[0], AvgTime: avgTime}
}

// runMusher runs the musher binary with output discarded and HOME redirected.
func runMusher(config BenchmarkConfig, home string, args ...string) error {
	cmd := exec.Command("musher", args...)
	cmd.Env = append(os.Environ(), "HOME="+home)

	done := make(chan error, 1)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-time.After(config.Timeout):
		_ = cmd.Process.Kill()
		return fmt.Errorf("command timed out after %v", config.Timeout)
	}
}

// generateSheet writes a wide CSV sheet with a plausible work pattern: each
// dog works roughly every other day with distances between 5 and 45 km.
func generateSheet(path string, kennel KennelSize) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	rng := rand.New(rand.NewSource(42))
	w := csv.NewWriter(f)
	defer w.Flush()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	header := []string{"dog_id"}
	for d := range kennel.Days {
		header = append(header, start.AddDate(0, 0, d).Format("2006-01-02"))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range kennel.Dogs {
		row := []string{fmt.Sprintf("dog%03d", i)}
		for range kennel.Days {
			if rng.Float64() < 0.55 {
				row = append(row, strconv.FormatFloat(5+rng.Float64()*40, 'f', 1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// lastDay returns the final sheet day in YYYY-MM-DD form.
func lastDay(kennel KennelSize) string {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return start.AddDate(0, 0, kennel.Days-1).Format("2006-01-02")
}

// saveResults writes the benchmark results as CSV.
func saveResults(config BenchmarkConfig, results []BenchmarkResult) error {
	path := filepath.Join(config.OutputDir, "musher_benchmark_results.csv")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"kennel", "command", "avg_time"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write([]string{r.Kennel, r.Command, r.AvgTime}); err != nil {
			return err
		}
	}
	fmt.Printf("Results saved to %s\n", path)
	return w.Error()
}

// printSummary prints the results table to stdout.
func printSummary(results []BenchmarkResult) {
	fmt.Println("\nBenchmark summary:")
	for _, r := range results {
		fmt.Printf("  %-8s %-12s %s\n", r.Kennel, r.Command, r.AvgTime)
	}
}
