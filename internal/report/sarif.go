// Package report serializes aggregated gate results and findings.
// Serialization only: everything here is straight templating over the
// already-normalized finding list.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/farcloser/casparian/internal/types"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarif struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name string `json:"name"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	Physical sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt     `json:"artifactLocation"`
	Region           *sarifRegion `json:"region,omitempty"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int `json:"startLine,omitempty"`
	StartColumn int `json:"startColumn,omitempty"`
}

// ToSARIF renders findings as a single-run SARIF 2.1.0 document.
func ToSARIF(toolName string, findings []types.Finding) ([]byte, error) {
	results := make([]sarifResult, 0, len(findings))

	for _, f := range findings {
		res := sarifResult{
			RuleID:  f.RuleID,
			Level:   string(f.Level),
			Message: sarifMessage{Text: f.Message},
		}

		for _, loc := range f.Locations {
			phys := sarifPhys{
				// Forward slashes for GitHub compatibility.
				ArtifactLocation: sarifArt{URI: strings.ReplaceAll(loc.Path, `\`, "/")},
			}

			if loc.Line > 0 || loc.Column > 0 {
				phys.Region = &sarifRegion{StartLine: loc.Line, StartColumn: loc.Column}
			}

			res.Locations = append(res.Locations, sarifLoc{Physical: phys})
		}

		results = append(results, res)
	}

	doc := sarif{
		Version: sarifVersion,
		Schema:  sarifSchema,
		Runs: []sarifRun{
			{Tool: sarifTool{Driver: sarifDriver{Name: toolName}}, Results: results},
		},
	}

	return json.MarshalIndent(doc, "", "  ")
}

// WriteSARIF writes the SARIF document to path.
func WriteSARIF(path, toolName string, findings []types.Finding) error {
	data, err := ToSARIF(toolName, findings)
	if err != nil {
		return fmt.Errorf("rendering sarif: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // report files are world-readable
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}
