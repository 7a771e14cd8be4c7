//nolint:wrapcheck
package main

import (
	"fmt"
	"os"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/casparian"
	"github.com/farcloser/casparian/internal/output"
	"github.com/farcloser/casparian/internal/types"
)

func outputResult(result *casparian.Result, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	var meta map[string]any
	if formatName == "console" || formatName == "markdown" {
		meta = buildFriendlyOutput(result)
	} else {
		meta = output.ResultToMap(result)
	}

	data := &format.Data{
		Object: "quality gates",
		Meta:   meta,
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}

// buildFriendlyOutput creates a user-facing summary of the gate run.
func buildFriendlyOutput(result *casparian.Result) map[string]any {
	verdict := "PASSED"
	if !result.Passed {
		verdict = "FAILED"
	}

	meta := map[string]any{
		"summary": fmt.Sprintf("%s (%d finding(s))", verdict, len(result.Findings)),
	}

	gates := make([]any, 0, len(result.Gates))

	for _, gate := range result.Gates {
		marker := "OK"

		switch gate.Status {
		case types.StatusFailed:
			marker = "!!"
		case types.StatusToolMissing:
			marker = "??"
		case types.StatusNotRun, types.StatusRunning, types.StatusPassed:
		}

		gates = append(gates, fmt.Sprintf("%s %s: %s", marker, gate.Name, gate.Details))
	}

	meta["gates"] = gates

	if len(result.Findings) > 0 {
		findings := make([]any, 0, len(result.Findings))

		for _, finding := range result.Findings {
			line := fmt.Sprintf("[%s] %s: %s", finding.Level, finding.RuleID, finding.Message)
			if len(finding.Locations) > 0 {
				loc := finding.Locations[0]
				line = fmt.Sprintf("%s:%d %s", loc.Path, loc.Line, line)
			}

			findings = append(findings, line)
		}

		meta["findings"] = findings
	}

	return meta
}
