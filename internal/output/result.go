// Package output provides shared result serialization for casparian JSON output.
package output

import (
	"github.com/farcloser/casparian"
	"github.com/farcloser/casparian/internal/types"
)

// ResultToMap converts a gate run result into the canonical map
// structure used for JSON and JSONL serialization.
func ResultToMap(result *casparian.Result) map[string]any {
	meta := map[string]any{
		"summary": map[string]any{
			"passed":    result.Passed,
			"exit_code": result.ExitCode,
		},
	}

	if result.Coverage != nil {
		meta["coverage_percent"] = *result.Coverage
	}

	gates := make([]any, 0, len(result.Gates))
	for _, gate := range result.Gates {
		gates = append(gates, map[string]any{
			"name":    gate.Name,
			"status":  gate.Status.String(),
			"passed":  gate.Passed,
			"details": gate.Details,
		})
	}

	meta["gates"] = gates

	findings := make([]any, 0, len(result.Findings))
	for _, finding := range result.Findings {
		findings = append(findings, FindingToMap(finding))
	}

	meta["findings"] = findings

	return meta
}

// FindingToMap flattens a finding for serialization. The first location
// is promoted to top-level path/line/column keys.
func FindingToMap(finding types.Finding) map[string]any {
	entry := map[string]any{
		"rule_id": finding.RuleID,
		"level":   string(finding.Level),
		"message": finding.Message,
	}

	if len(finding.Locations) > 0 {
		loc := finding.Locations[0]
		entry["path"] = loc.Path

		if loc.Line > 0 {
			entry["line"] = loc.Line
		}

		if loc.Column > 0 {
			entry["column"] = loc.Column
		}
	}

	return entry
}
