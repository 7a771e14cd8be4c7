package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/farcloser/casparian/internal/types"
)

const reportVersion = "1.0"

type jsonReport struct {
	Version  string          `json:"version"`
	Summary  jsonSummary     `json:"summary"`
	Findings []types.Finding `json:"findings"`
}

type jsonSummary struct {
	Passed bool               `json:"passed"`
	Gates  []types.GateResult `json:"gates"`
}

// WriteJSON writes the machine-readable gate report.
// Every gate appears by name with its individual status; a tool crash
// never drops a gate from the summary.
func WriteJSON(path string, gates []types.GateResult, findings []types.Finding) error {
	if findings == nil {
		findings = []types.Finding{}
	}

	payload := jsonReport{
		Version:  reportVersion,
		Summary:  jsonSummary{Passed: allPassed(gates), Gates: gates},
		Findings: findings,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("rendering json report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // report files are world-readable
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

func allPassed(gates []types.GateResult) bool {
	for _, g := range gates {
		if !g.Passed {
			return false
		}
	}

	return true
}
