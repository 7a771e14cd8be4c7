package parsers

import (
	"bufio"
	"os"
	"strings"

	"github.com/farcloser/casparian/internal/rules"
	"github.com/farcloser/casparian/internal/types"
)

// Two deliberately naive substring scans. These are not static analysis:
// they exist to flag the handful of constructs the security tools cannot
// see when they are absent from the environment, and they accept false
// positives from comments and strings.
var dangerousCalls = []string{"eval(", "exec("}

// ScanDangerousCalls scans the given source files for eval/exec call
// substrings and reports each hit as a warning finding. Files that
// cannot be read are skipped.
func ScanDangerousCalls(style rules.Style, paths []string) []types.Finding {
	var findings []types.Finding

	for _, path := range paths {
		file, err := os.Open(path) //nolint:gosec // paths come from the user's own repository
		if err != nil {
			continue
		}

		scanner := bufio.NewScanner(file)

		lineNo := 0
		for scanner.Scan() {
			lineNo++

			for _, call := range dangerousCalls {
				col := strings.Index(scanner.Text(), call)
				if col < 0 {
					continue
				}

				findings = append(findings, types.Finding{
					RuleID:  rules.MakeRuleID(style, "casparian", "dangerous-call"),
					Level:   types.LevelWarning,
					Message: "use of " + strings.TrimSuffix(call, "(") + " detected",
					Locations: []types.Location{
						{Path: path, Line: lineNo, Column: col + 1},
					},
				})
			}
		}

		file.Close()
	}

	return findings
}
