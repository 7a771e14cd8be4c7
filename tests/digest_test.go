package tests_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/expect"
	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/casparian/tests/testutils"
)

const runLog = `{"timestamp":"2026-08-30T10:00:00Z","passed":true,"gates":[{"name":"Lint (flake8)","passed":true,"details":"No issues"},{"name":"Coverage","passed":true,"details":"90% >= 80%"}],"coverage":90,"counts":{}}
{"timestamp":"2026-08-30T11:00:00Z","passed":false,"gates":[{"name":"Lint (flake8)","passed":false,"details":"2 issues","exit_code":1},{"name":"Coverage","passed":true,"details":"82% >= 80%"}],"coverage":82,"counts":{"error":2}}
this line is not json
`

func TestDigestCLI(t *testing.T) {
	dir := t.TempDir()

	logPath := filepath.Join(dir, "runs.jsonl")
	if err := os.WriteFile(logPath, []byte(runLog), 0o644); err != nil {
		t.Fatal(err)
	}

	casReport := testutils.Binary("cas-report")

	testCase := testutils.Setup()

	testCase.SubTests = []*test.Case{
		{
			Description: "digest summarizes runs, gates and coverage",
			Command:     testutils.Custom(casReport, "digest", logPath),
			Expected: test.Expects(expect.ExitCodeSuccess, nil, expect.All(
				expectContains("Total runs:  3"),
				expectContains("Unparsable:  1"),
				expectContains("Passed:      1"),
				expectContains("Pass rate:   50.0%"),
				expectContains("Lint (flake8)"),
				expectContains("runs: 2  failures: 1"),
				expectContains("mean:"),
				expectContains("86.0%"),
			)),
		},
		{
			Description: "gate filter lists failing run details",
			Command:     testutils.Custom(casReport, "digest", "--gate", "Lint (flake8)", logPath),
			Expected: test.Expects(expect.ExitCodeSuccess, nil,
				expectContains("Lint (flake8): 2 issues")),
		},
		{
			Description: "gate filter reports when nothing failed",
			Command:     testutils.Custom(casReport, "digest", "--gate", "Coverage", logPath),
			Expected: test.Expects(expect.ExitCodeSuccess, nil,
				expectContains(`No failed runs for gate "Coverage"`)),
		},
		{
			Description: "digest without arguments fails",
			Command:     testutils.Custom(casReport, "digest"),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "digest of a missing log fails",
			Command:     testutils.Custom(casReport, "digest", filepath.Join(dir, "absent.jsonl")),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
	}

	testCase.Run(t)
}
