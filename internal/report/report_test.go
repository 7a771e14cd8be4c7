package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/casparian/internal/report"
	"github.com/farcloser/casparian/internal/types"
)

func sampleFindings() []types.Finding {
	return []types.Finding{
		{
			RuleID:  "flake8:E501",
			Level:   types.LevelError,
			Message: "line too long",
			Locations: []types.Location{
				{Path: `src\app\main.py`, Line: 10, Column: 5},
			},
		},
		{
			RuleID:  "bandit",
			Level:   types.LevelWarning,
			Message: "possible issue",
		},
	}
}

func sampleGates() []types.GateResult {
	return []types.GateResult{
		{Name: "Lint (flake8)", Status: types.StatusFailed, Passed: false, Details: "1 issue", ExitCode: 1},
		{Name: "Coverage", Status: types.StatusPassed, Passed: true, Details: "85% >= 80%"},
	}
}

func TestToSARIF(t *testing.T) {
	t.Parallel()

	data, err := report.ToSARIF("casparian", sampleFindings())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "2.1.0", doc["version"])
	assert.Contains(t, doc["$schema"], "sarif-2.1.0")

	runs, ok := doc["runs"].([]any)
	require.True(t, ok)
	require.Len(t, runs, 1)

	run, ok := runs[0].(map[string]any)
	require.True(t, ok)

	results, ok := run["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 2)

	first, ok := results[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "flake8:E501", first["ruleId"])
	assert.Equal(t, "error", first["level"])

	// Backslashes become forward slashes in artifact URIs.
	assert.Contains(t, string(data), "src/app/main.py")
	assert.NotContains(t, string(data), `src\\app`)

	// A finding without a location carries no locations array.
	second, ok := results[1].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, second, "locations")
}

func TestToSARIFEmpty(t *testing.T) {
	t.Parallel()

	data, err := report.ToSARIF("casparian", nil)
	require.NoError(t, err)

	// results must be [], not null.
	assert.Contains(t, string(data), `"results": []`)
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, report.WriteJSON(path, sampleGates(), sampleFindings()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "1.0", doc["version"])

	summary, ok := doc["summary"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, summary["passed"])

	gates, ok := summary["gates"].([]any)
	require.True(t, ok)
	assert.Len(t, gates, 2)
}

func TestWriteJSONNilFindings(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, report.WriteJSON(path, nil, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"findings": []`)
}

func TestWriteHTML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, report.WriteHTML(path, sampleGates(), sampleFindings()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	page := string(data)
	assert.Contains(t, page, "GATES FAILED")
	assert.Contains(t, page, "Lint (flake8)")
	assert.Contains(t, page, "flake8:E501")
}

func TestWriteHTMLEscapes(t *testing.T) {
	t.Parallel()

	findings := []types.Finding{
		{RuleID: "x", Level: types.LevelNote, Message: `<script>alert("x")</script>`},
	}

	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, report.WriteHTML(path, nil, findings))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "<script>alert")
}

func TestAppendRecord(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "runs.jsonl")

	cov := 85
	rec := report.NewRecord(sampleGates(), sampleFindings(), &cov)
	require.NoError(t, report.AppendRecord(path, rec))
	require.NoError(t, report.AppendRecord(path, rec))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}

	assert.Equal(t, 2, lines)

	assert.Equal(t, false, rec.Passed)
	assert.Equal(t, 1, rec.Counts["error"])
	assert.Equal(t, 1, rec.Counts["warning"])
}
