// Package casparian gates merges on code quality.
//
// It runs external quality tools as subprocesses, normalizes their
// output into findings, and applies pass/fail policy per gate.
//
/*
Usage:

	opts := casparian.DefaultOptions()
	opts.MinCoverage = 85

	result, err := casparian.Run(ctx, opts)
	if !result.Passed {
	    os.Exit(result.ExitCode)
	}

	// Iterate findings
	for _, f := range result.Findings {
	    fmt.Printf("[%s] %s: %s\n", f.Level, f.RuleID, f.Message)
	}
*/
package casparian

import (
	"fmt"
	"strings"

	"github.com/farcloser/casparian/internal/rules"
)

// Gate selects which quality gates to run.
type Gate int

const (
	GateLint Gate = 1 << iota
	GateTypes
	GateSecurity
	GateCoverage
	GateTests

	// Presets.
	GatesStatic = GateLint | GateTypes | GateSecurity

	GatesAll = GatesStatic | GateCoverage | GateTests
)

func (g Gate) String() string {
	switch g {
	case GateLint:
		return "lint"
	case GateTypes:
		return "types"
	case GateSecurity:
		return "security"
	case GateCoverage:
		return "coverage"
	case GateTests:
		return "tests"
	}

	return "unknown"
}

var errUnknownGate = fmt.Errorf("unknown gate")

// ParseGates parses a comma-separated gate list or preset name.
// An empty selection means GatesAll.
func ParseGates(raw string) (Gate, error) {
	var result Gate

	for name := range strings.SplitSeq(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		switch name {
		case "lint":
			result |= GateLint
		case "types":
			result |= GateTypes
		case "security":
			result |= GateSecurity
		case "coverage":
			result |= GateCoverage
		case "tests":
			result |= GateTests
		case "static":
			result |= GatesStatic
		case "all":
			result |= GatesAll
		default:
			return 0, fmt.Errorf("%w: %q", errUnknownGate, name)
		}
	}

	if result == 0 {
		return GatesAll, nil
	}

	return result, nil
}

// Options configures a gate run.
type Options struct {
	// Gates to run (default: GatesAll).
	Gates Gate

	// MinCoverage is the coverage threshold in percent. Zero means no
	// minimum: the coverage gate reports informationally and passes.
	MinCoverage int

	// Style is the rule identifier convention for every finding of the
	// run. Read once at the boundary, applied consistently.
	Style rules.Style

	// Strict makes a missing tool count as a pipeline failure instead
	// of a non-blocking "tool not found" verdict.
	Strict bool

	// TestMode suppresses reads of real coverage files, so test runs
	// cannot pick up a stray coverage.xml from the working tree.
	TestMode bool

	// Paths are the lint and type-check targets when ChangedFiles is
	// empty.
	Paths []string

	// ChangedFiles scopes linting to the given files when non-empty.
	ChangedFiles []string

	// SecurityTarget and SecurityExclude shape the bandit invocation.
	SecurityTarget  string
	SecurityExclude string

	// CoverageCandidates are the report paths probed in order.
	CoverageCandidates []string

	// CoverageTarget is the measured tree for the tests gate.
	CoverageTarget string

	// SkipTests skips the pytest gate even when selected.
	SkipTests bool
}

// DefaultOptions returns the conventional Python project layout.
func DefaultOptions() Options {
	return Options{
		Gates:           GatesAll,
		MinCoverage:     80,
		Paths:           []string{"src", "tests"},
		SecurityTarget:  "src",
		SecurityExclude: "tests",
		CoverageTarget:  "src",
	}
}
