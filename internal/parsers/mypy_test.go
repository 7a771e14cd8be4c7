package parsers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/casparian/internal/parsers"
	"github.com/farcloser/casparian/internal/rules"
	"github.com/farcloser/casparian/internal/types"
)

func TestParseMypy(t *testing.T) {
	t.Parallel()

	out := `a.py:10:5: error: Name "x" is not defined [name-defined]
a.py:12: warning: unused "type: ignore" comment
b.py:3:1: note: Revealed type is "builtins.int"
Found 1 error in 1 file (checked 2 source files)
`

	findings := parsers.ParseMypy(rules.StyleBare, out)
	require.Len(t, findings, 3)

	first := findings[0]
	assert.Equal(t, "name-defined", first.RuleID)
	assert.Equal(t, types.LevelError, first.Level)
	assert.Equal(t, `Name "x" is not defined`, first.Message)
	assert.Equal(t, types.Location{Path: "a.py", Line: 10, Column: 5}, first.Locations[0])

	// No bracketed code and no column.
	second := findings[1]
	assert.Equal(t, "mypy-error", second.RuleID)
	assert.Equal(t, types.LevelWarning, second.Level)
	assert.Equal(t, types.Location{Path: "a.py", Line: 12}, second.Locations[0])

	third := findings[2]
	assert.Equal(t, types.LevelNote, third.Level)
	assert.Equal(t, `Revealed type is "builtins.int"`, third.Message)
}

func TestParseMypyToolStyle(t *testing.T) {
	t.Parallel()

	findings := parsers.ParseMypy(rules.StyleTool, `a.py:1: error: bad [misc]`+"\n")
	require.Len(t, findings, 1)
	assert.Equal(t, "mypy:misc", findings[0].RuleID)
}

// Informational lines with unrecognized severity tokens are not
// diagnostics and must be dropped.
func TestParseMypySkipsNonDiagnostics(t *testing.T) {
	t.Parallel()

	out := `a.py:1: info: some informational text
Success: no issues found in 3 source files
`

	assert.Empty(t, parsers.ParseMypy(rules.StyleBare, out))
}
