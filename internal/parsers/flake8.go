package parsers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/farcloser/casparian/internal/rules"
	"github.com/farcloser/casparian/internal/types"
)

// flake8Line matches "path:line:col: CODE message", e.g.
// "a.py:10:5: E501 line too long".
var flake8Line = regexp.MustCompile(`^(?P<file>.*?):(?P<line>\d+):(?P<col>\d+): (?P<code>[A-Z]\d{3,4}) (?P<msg>.*)$`)

// ParseFlake8 parses flake8 text output into findings.
//
// Flake8 has no severity split at the output-line level, so every
// finding is reported at error level. Gate policy downstream decides
// what blocks. Non-matching lines are skipped silently.
func ParseFlake8(style rules.Style, text string) []types.Finding {
	var findings []types.Finding

	for line := range strings.Lines(text) {
		match := flake8Line.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}

		lineNo, _ := strconv.Atoi(match[2])
		colNo, _ := strconv.Atoi(match[3])

		findings = append(findings, types.Finding{
			RuleID:  rules.MakeRuleID(style, "flake8", match[4]),
			Level:   types.LevelError,
			Message: match[5],
			Locations: []types.Location{
				{Path: match[1], Line: lineNo, Column: colNo},
			},
		})
	}

	return findings
}
