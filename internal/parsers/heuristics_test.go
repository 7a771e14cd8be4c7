package parsers_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/casparian/internal/parsers"
	"github.com/farcloser/casparian/internal/rules"
	"github.com/farcloser/casparian/internal/types"
)

func TestScanDangerousCalls(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "app.py")

	src := `import os

def run(code):
    return eval(code)

exec("print(1)")
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	findings := parsers.ScanDangerousCalls(rules.StyleBare, []string{path})
	require.Len(t, findings, 2)

	first := findings[0]
	assert.Equal(t, "dangerous-call", first.RuleID)
	assert.Equal(t, types.LevelWarning, first.Level)
	assert.Equal(t, "use of eval detected", first.Message)
	assert.Equal(t, 4, first.Locations[0].Line)
	assert.Equal(t, 12, first.Locations[0].Column)

	assert.Equal(t, "use of exec detected", findings[1].Message)
	assert.Equal(t, 6, findings[1].Locations[0].Line)
	assert.Equal(t, 1, findings[1].Locations[0].Column)
}

// Unreadable paths are skipped, never reported as findings.
func TestScanDangerousCallsMissingFile(t *testing.T) {
	t.Parallel()

	assert.Empty(t, parsers.ScanDangerousCalls(rules.StyleBare, []string{"/does/not/exist.py"}))
}
