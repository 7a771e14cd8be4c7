package casparian

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/casparian/internal/coverage"
	"github.com/farcloser/casparian/internal/integration/bandit"
	"github.com/farcloser/casparian/internal/integration/binary"
	"github.com/farcloser/casparian/internal/integration/flake8"
	"github.com/farcloser/casparian/internal/integration/mypy"
	"github.com/farcloser/casparian/internal/integration/pytest"
	"github.com/farcloser/casparian/internal/parsers"
	"github.com/farcloser/casparian/internal/types"
)

const (
	gateLintName     = "Lint (flake8)"
	gateTypesName    = "Static types (mypy)"
	gateSecurityName = "Security (bandit)"
	gateCoverageName = "Coverage"
	gateTestsName    = "Tests (pytest)"
)

// Result is the outcome of a full gate run.
type Result struct {
	Gates    []types.GateResult
	Findings []types.Finding
	Passed   bool
	ExitCode int
	// Coverage is the measured percentage, nil when no report was found.
	Coverage *int
}

// Run executes the selected gates sequentially and aggregates their
// verdicts. A non-nil error means the run itself could not proceed, not
// that a gate failed: gate failures are reported through the Result.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Gates == 0 {
		opts.Gates = GatesAll
	}

	result := &Result{}

	if opts.Gates&GateLint != 0 {
		gate, findings := runLintGate(ctx, opts)
		result.Gates = append(result.Gates, gate)
		result.Findings = append(result.Findings, findings...)
	}

	if opts.Gates&GateTypes != 0 {
		gate, findings := runTypeGate(ctx, opts)
		result.Gates = append(result.Gates, gate)
		result.Findings = append(result.Findings, findings...)
	}

	if opts.Gates&GateSecurity != 0 {
		gate, findings := runSecurityGate(ctx, opts)
		result.Gates = append(result.Gates, gate)
		result.Findings = append(result.Findings, findings...)
	}

	var testOutput string

	if opts.Gates&GateTests != 0 && !opts.SkipTests {
		gate, out := runTestsGate(ctx, opts)
		result.Gates = append(result.Gates, gate)
		testOutput = out
	}

	if opts.Gates&GateCoverage != 0 {
		gate, pct := runCoverageGate(opts, testOutput)
		result.Gates = append(result.Gates, gate)
		result.Coverage = pct
	}

	result.Passed, result.ExitCode = Summarize(result.Gates)

	return result, nil
}

// Summarize reduces gate results to an overall verdict and process exit
// code. Any failed gate fails the run.
func Summarize(gates []types.GateResult) (bool, int) {
	passed := true
	code := 0

	for _, gate := range gates {
		if !gate.Passed {
			passed = false
		}

		if gate.ExitCode != 0 {
			code = 1
		}
	}

	if !passed {
		code = 1
	}

	return passed, code
}

// lintTargets returns the changed-file scope when set, the configured
// paths otherwise.
func lintTargets(opts Options) []string {
	if len(opts.ChangedFiles) > 0 {
		return opts.ChangedFiles
	}

	return opts.Paths
}

func missingToolGate(name string, opts Options, err error) types.GateResult {
	gate := types.GateResult{
		Name:    name,
		Status:  types.StatusToolMissing,
		Passed:  !opts.Strict,
		Details: "Tool not found: " + err.Error(),
	}

	if opts.Strict {
		gate.ExitCode = 1
	}

	slog.Debug("tool missing", "gate", name, "error", err)

	return gate
}

func failedRunGate(name string, err error) types.GateResult {
	return types.GateResult{
		Name:     name,
		Status:   types.StatusFailed,
		Passed:   false,
		Details:  err.Error(),
		ExitCode: 1,
	}
}

func runLintGate(ctx context.Context, opts Options) (types.GateResult, []types.Finding) {
	inv, err := flake8.Run(ctx, lintTargets(opts))
	if err != nil {
		if errors.Is(err, fault.ErrMissingRequirements) {
			return missingToolGate(gateLintName, opts, err), nil
		}

		return failedRunGate(gateLintName, err), nil
	}

	findings := parsers.ParseFlake8(opts.Style, inv.Output())

	return lintVerdict(gateLintName, inv.ExitCode, len(findings)), findings
}

func runTypeGate(ctx context.Context, opts Options) (types.GateResult, []types.Finding) {
	inv, err := mypy.Run(ctx, lintTargets(opts))
	if err != nil {
		if errors.Is(err, fault.ErrMissingRequirements) {
			return missingToolGate(gateTypesName, opts, err), nil
		}

		return failedRunGate(gateTypesName, err), nil
	}

	findings := parsers.ParseMypy(opts.Style, inv.Output())

	return lintVerdict(gateTypesName, inv.ExitCode, len(findings)), findings
}

// lintVerdict applies the exit-code policy shared by the flake8 and
// mypy gates: the tool's own exit status decides, findings are detail.
func lintVerdict(name string, exitCode, count int) types.GateResult {
	gate := types.GateResult{
		Name:   name,
		Status: types.StatusPassed,
		Passed: exitCode == 0,
	}

	if !gate.Passed {
		gate.Status = types.StatusFailed
		gate.ExitCode = 1
	}

	switch {
	case count == 0:
		gate.Details = "No issues"
	case count == 1:
		gate.Details = "1 issue"
	default:
		gate.Details = fmt.Sprintf("%d issues", count)
	}

	return gate
}

func runSecurityGate(ctx context.Context, opts Options) (types.GateResult, []types.Finding) {
	inv, err := bandit.Run(ctx, opts.SecurityTarget, opts.SecurityExclude)
	if err != nil {
		if errors.Is(err, fault.ErrMissingRequirements) {
			return missingToolGate(gateSecurityName, opts, err), nil
		}

		return failedRunGate(gateSecurityName, err), nil
	}

	findings := parsers.ParseBanditJSON(opts.Style, []byte(inv.Stdout))
	if len(findings) == 0 && !looksLikeJSON(inv.Stdout) {
		findings = parsers.ParseBanditText(opts.Style, inv.Output())
	}

	findings = append(findings, parsers.ScanDangerousCalls(opts.Style, opts.ChangedFiles)...)

	return securityVerdict(inv.ExitCode, findings), findings
}

func looksLikeJSON(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), "{")
}

// securityVerdict re-validates parsed findings even on a clean exit:
// bandit exits zero with -s skips in place, yet high-severity results
// in the report must still block.
func securityVerdict(exitCode int, findings []types.Finding) types.GateResult {
	gate := types.GateResult{
		Name:   gateSecurityName,
		Status: types.StatusPassed,
		Passed: true,
	}

	high := 0

	for _, finding := range findings {
		if finding.Level == types.LevelError {
			high++
		}
	}

	if exitCode != 0 || high > 0 {
		gate.Status = types.StatusFailed
		gate.Passed = false
		gate.ExitCode = 1
	}

	switch {
	case high > 0:
		gate.Details = fmt.Sprintf("%d high severity issue(s)", high)
	case len(findings) > 0:
		gate.Details = fmt.Sprintf("%d issue(s), none high severity", len(findings))
	default:
		gate.Details = "No issues"
	}

	return gate
}

func runTestsGate(ctx context.Context, opts Options) (types.GateResult, string) {
	var (
		inv *binary.Invocation
		err error
	)

	if opts.CoverageTarget != "" {
		inv, err = pytest.RunWithCoverage(ctx, opts.CoverageTarget)
	} else {
		inv, err = pytest.Run(ctx)
	}

	if err != nil {
		if errors.Is(err, fault.ErrMissingRequirements) {
			return missingToolGate(gateTestsName, opts, err), ""
		}

		return failedRunGate(gateTestsName, err), ""
	}

	gate := types.GateResult{
		Name:    gateTestsName,
		Status:  types.StatusPassed,
		Passed:  inv.ExitCode == 0,
		Details: "All tests passed",
	}

	if !gate.Passed {
		gate.Status = types.StatusFailed
		gate.ExitCode = 1
		gate.Details = lastLine(inv.Stdout)
	}

	return gate, inv.Stdout
}

// lastLine extracts the trailing summary line of a pytest run.
func lastLine(raw string) string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) == 0 {
		return ""
	}

	return strings.TrimSpace(lines[len(lines)-1])
}

// runCoverageGate probes the XML report candidates first and falls back
// to the test runner's terminal TOTAL line when none of them parsed.
func runCoverageGate(opts Options, testOutput string) (types.GateResult, *int) {
	var pct *int

	if !opts.TestMode {
		if value, ok := coverage.Percent(opts.CoverageCandidates...); ok {
			pct = &value
		} else if value, ok := coverage.PercentFromOutput(testOutput); ok {
			pct = &value
		}
	}

	return coverageVerdict(pct, opts.MinCoverage), pct
}

// coverageVerdict applies the threshold policy. A missing report with a
// threshold in force is a failure, never a silent zero.
func coverageVerdict(pct *int, minCoverage int) types.GateResult {
	gate := types.GateResult{
		Name:   gateCoverageName,
		Status: types.StatusPassed,
		Passed: true,
	}

	if minCoverage <= 0 {
		if pct != nil {
			gate.Details = fmt.Sprintf("%d%% (no minimum set)", *pct)
		} else {
			gate.Details = "No coverage data (no minimum set)"
		}

		return gate
	}

	if pct == nil {
		gate.Status = types.StatusFailed
		gate.Passed = false
		gate.ExitCode = 1
		gate.Details = "No coverage data"

		return gate
	}

	if *pct >= minCoverage {
		gate.Details = fmt.Sprintf("%d%% >= %d%%", *pct, minCoverage)

		return gate
	}

	gate.Status = types.StatusFailed
	gate.Passed = false
	gate.ExitCode = 1
	gate.Details = fmt.Sprintf("%d%% < %d%%", *pct, minCoverage)

	return gate
}
