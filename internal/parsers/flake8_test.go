package parsers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/casparian/internal/parsers"
	"github.com/farcloser/casparian/internal/rules"
	"github.com/farcloser/casparian/internal/types"
)

func TestParseFlake8(t *testing.T) {
	t.Parallel()

	out := `a.py:10:5: E501 line too long (88 > 79 characters)
b.py:1:1: F401 'os' imported but unused
garbage line that matches nothing
c.py:3:2: W291 trailing whitespace
`

	findings := parsers.ParseFlake8(rules.StyleBare, out)
	require.Len(t, findings, 3)

	first := findings[0]
	assert.Equal(t, "E501", first.RuleID)
	assert.Equal(t, types.LevelError, first.Level)
	assert.Equal(t, "line too long (88 > 79 characters)", first.Message)
	require.Len(t, first.Locations, 1)
	assert.Equal(t, types.Location{Path: "a.py", Line: 10, Column: 5}, first.Locations[0])

	assert.Equal(t, "F401", findings[1].RuleID)
	assert.Equal(t, "W291", findings[2].RuleID)
}

func TestParseFlake8ToolStyle(t *testing.T) {
	t.Parallel()

	findings := parsers.ParseFlake8(rules.StyleTool, "a.py:10:5: E501 line too long\n")
	require.Len(t, findings, 1)
	assert.Equal(t, "flake8:E501", findings[0].RuleID)
}

func TestParseFlake8Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, parsers.ParseFlake8(rules.StyleBare, ""))
	assert.Empty(t, parsers.ParseFlake8(rules.StyleBare, "no diagnostics here\n"))
}

// Windows-style paths contain a drive colon; the lazy path group must
// still leave line and column intact.
func TestParseFlake8WindowsPath(t *testing.T) {
	t.Parallel()

	findings := parsers.ParseFlake8(rules.StyleBare, `C:\src\a.py:2:1: E302 expected 2 blank lines`)
	require.Len(t, findings, 1)
	assert.Equal(t, `C:\src\a.py`, findings[0].Locations[0].Path)
	assert.Equal(t, 2, findings[0].Locations[0].Line)
}
