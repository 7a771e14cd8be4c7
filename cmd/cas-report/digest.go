package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/urfave/cli/v3"
	"gonum.org/v1/gonum/stat"
)

func digestCommand() *cli.Command {
	return &cli.Command{
		Name:      "digest",
		Usage:     "Produce a summary digest from a casparian JSONL run log",
		ArgsUsage: "<runs.jsonl>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "gate",
				Usage: "Show details of runs where the named gate failed (e.g., Coverage)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errors.New("expected exactly one argument: path to runs.jsonl")
			}

			return runDigest(cmd.Args().First(), cmd.String("gate"))
		},
	}
}

func runDigest(logPath, gateFilter string) error {
	records, err := readRecords(logPath)
	if err != nil {
		return err
	}

	printDigest(records)

	if gateFilter != "" {
		printGateDetail(records, gateFilter)
	}

	return nil
}

func readRecords(path string) ([]digestRecord, error) {
	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified log files
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer file.Close()

	var records []digestRecord

	scanner := bufio.NewScanner(file)

	const maxLineSize = 1024 * 1024 // 1MB
	scanner.Buffer(make([]byte, 0, maxLineSize), maxLineSize)

	for scanner.Scan() {
		var rec digestRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			records = append(records, digestRecord{Error: "parse error"})

			continue
		}

		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading run log: %w", err)
	}

	return records, nil
}

//nolint:forbidigo
func printDigest(records []digestRecord) {
	total := len(records)
	failedParse := 0
	passed := 0
	levelDist := map[string]int{}
	gateStats := map[string]*gateBreakdown{}

	var coverages []float64

	for _, rec := range records {
		if rec.Error != "" {
			failedParse++

			continue
		}

		if rec.Passed {
			passed++
		}

		for level, count := range rec.Counts {
			levelDist[level] += count
		}

		for _, gate := range rec.Gates {
			breakdown, ok := gateStats[gate.Name]
			if !ok {
				breakdown = &gateBreakdown{Name: gate.Name}
				gateStats[gate.Name] = breakdown
			}

			breakdown.Runs++

			if !gate.Passed {
				breakdown.Failures++
			}
		}

		if rec.Coverage != nil {
			coverages = append(coverages, float64(*rec.Coverage))
		}
	}

	analyzed := total - failedParse

	fmt.Println("=== Casparian Run Digest ===")
	fmt.Println()
	fmt.Printf("Total runs:  %d\n", total)
	fmt.Printf("Unparsable:  %d\n", failedParse)
	fmt.Printf("Passed:      %d\n", passed)
	fmt.Printf("Failed:      %d\n", analyzed-passed)

	if analyzed > 0 {
		fmt.Printf("Pass rate:   %.1f%%\n", float64(passed)/float64(analyzed)*100)
	}

	fmt.Println()

	fmt.Println("--- Findings By Level ---")
	for _, level := range []string{"error", "warning", "note", "none"} {
		if count, ok := levelDist[level]; ok && count > 0 {
			fmt.Printf("  %-8s %d\n", level+":", count)
		}
	}

	fmt.Println()

	fmt.Println("--- Gate Failures ---")

	breakdowns := make([]*gateBreakdown, 0, len(gateStats))
	for _, bd := range gateStats {
		breakdowns = append(breakdowns, bd)
	}

	slices.SortFunc(breakdowns, func(a, b *gateBreakdown) int {
		return b.Failures - a.Failures
	})

	for _, bd := range breakdowns {
		fmt.Printf("  %s\n", bd.Name)
		fmt.Printf("    runs: %d  failures: %d\n", bd.Runs, bd.Failures)
	}

	printCoverageStats(coverages)
}

//nolint:forbidigo
func printCoverageStats(coverages []float64) {
	if len(coverages) == 0 {
		return
	}

	sort.Float64s(coverages)

	fmt.Println()
	fmt.Println("--- Coverage ---")
	fmt.Printf("  runs with data:  %d\n", len(coverages))
	fmt.Printf("  mean:            %.1f%%\n", stat.Mean(coverages, nil))
	fmt.Printf("  median:          %.1f%%\n", stat.Quantile(0.5, stat.Empirical, coverages, nil))
	fmt.Printf("  p10:             %.1f%%\n", stat.Quantile(0.1, stat.Empirical, coverages, nil))
	fmt.Printf("  min/max:         %.0f%% / %.0f%%\n", coverages[0], coverages[len(coverages)-1])
}

//nolint:forbidigo
func printGateDetail(records []digestRecord, name string) {
	fmt.Println()

	found := 0

	for _, rec := range records {
		if rec.Error != "" {
			continue
		}

		for _, gate := range rec.Gates {
			if gate.Name != name || gate.Passed {
				continue
			}

			found++

			fmt.Printf("%s  %s: %s\n", rec.Timestamp, gate.Name, gate.Details)
		}
	}

	if found == 0 {
		fmt.Printf("No failed runs for gate %q\n", name)
	}
}
