package parsers

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/farcloser/casparian/internal/rules"
	"github.com/farcloser/casparian/internal/types"
)

// banditReport is the subset of bandit's JSON output we consume.
// A decode into this shape either succeeds as a whole or the input is
// treated as carrying no findings. There is no partial recovery from a
// structurally wrong document.
type banditReport struct {
	Results []banditResult `json:"results"`
}

type banditResult struct {
	TestID        string `json:"test_id"`
	TestName      string `json:"test_name"`
	Filename      string `json:"filename"`
	LineNumber    int    `json:"line_number"`
	IssueText     string `json:"issue_text"`
	IssueSeverity string `json:"issue_severity"`
}

// ParseBanditJSON parses `bandit -f json` output into findings.
//
// Undecodable input, a non-object top level, a missing or empty results
// array all yield an empty slice, never an error. The rule id comes from
// test_id, falling back to test_name, then to "bandit" itself.
func ParseBanditJSON(style rules.Style, data []byte) []types.Finding {
	var report banditReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil
	}

	var findings []types.Finding

	for _, res := range report.Results {
		code := res.TestID
		if code == "" {
			code = res.TestName
		}

		line := res.LineNumber
		if line <= 0 {
			line = 1
		}

		findings = append(findings, types.Finding{
			RuleID:  rules.MakeRuleID(style, "bandit", code),
			Level:   types.ParseLevel(res.IssueSeverity),
			Message: res.IssueText,
			Locations: []types.Location{
				{Path: res.Filename, Line: line},
			},
		})
	}

	return findings
}

// Bandit's plain-text mode prints issue blocks of the form:
//
//	>> Issue: [B101:assert_used] Use of assert detected.
//	   Severity: Low   Confidence: High
//	   Location: ./app/views.py:23:0
var (
	banditIssueLine    = regexp.MustCompile(`Issue:\s*\[(?P<code>[^\]:]+)(?::(?P<name>[^\]]*))?\]\s*(?P<msg>.*)$`)
	banditSeverityLine = regexp.MustCompile(`Severity:\s*(?P<sev>\w+)`)
	banditLocationLine = regexp.MustCompile(`Location:\s*(?P<file>.+?):(?P<line>\d+)`)
)

// ParseBanditText parses bandit's free-text output into findings.
// It is the fallback for invocations without -f json. Input with no
// recognizable issue markers yields an empty slice.
func ParseBanditText(style rules.Style, text string) []types.Finding {
	var (
		findings []types.Finding
		current  *types.Finding
	)

	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)

		if match := banditIssueLine.FindStringSubmatch(line); match != nil {
			if current != nil {
				findings = append(findings, *current)
			}

			current = &types.Finding{
				RuleID:  rules.MakeRuleID(style, "bandit", match[1]),
				Level:   types.LevelWarning,
				Message: match[3],
			}

			continue
		}

		if current == nil {
			continue
		}

		if match := banditSeverityLine.FindStringSubmatch(line); match != nil {
			current.Level = types.ParseLevel(strings.ToUpper(match[1]))

			continue
		}

		if match := banditLocationLine.FindStringSubmatch(line); match != nil {
			lineNo, _ := strconv.Atoi(match[2])
			current.Locations = []types.Location{
				{Path: match[1], Line: lineNo},
			}
		}
	}

	if current != nil {
		findings = append(findings, *current)
	}

	return findings
}
