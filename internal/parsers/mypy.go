package parsers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/farcloser/casparian/internal/rules"
	"github.com/farcloser/casparian/internal/types"
)

// mypyLine matches "path:line[:col]: severity: message [code]" where the
// column and the trailing bracketed rule code are both optional, e.g.
// "a.py:10:5: error: Name "x" is not defined [name-defined]".
var mypyLine = regexp.MustCompile(
	`^(?P<file>.*?):(?P<line>\d+)(?::(?P<col>\d+))?: (?P<level>error|warning|note): (?P<msg>.*?)(?: \[(?P<code>[^\]]+)\])?$`,
)

// ParseMypy parses mypy text output into findings.
//
// Only the error, warning and note severities are diagnostics; lines
// with any other severity token (mypy emits informational text too) are
// skipped. A trailing bracketed code becomes the rule id and is stripped
// from the message. Without one, the rule id falls back to "mypy-error".
func ParseMypy(style rules.Style, text string) []types.Finding {
	var findings []types.Finding

	for line := range strings.Lines(text) {
		match := mypyLine.FindStringSubmatch(strings.TrimSpace(line))
		if match == nil {
			continue
		}

		lineNo, _ := strconv.Atoi(match[2])

		colNo := 0
		if match[3] != "" {
			colNo, _ = strconv.Atoi(match[3])
		}

		code := match[6]
		if code == "" {
			code = "mypy-error"
		}

		findings = append(findings, types.Finding{
			RuleID:  rules.MakeRuleID(style, "mypy", code),
			Level:   types.ParseLevel(match[4]),
			Message: match[5],
			Locations: []types.Location{
				{Path: match[1], Line: lineNo, Column: colNo},
			},
		})
	}

	return findings
}
