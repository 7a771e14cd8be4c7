package types

// Level is the normalized severity of a finding, aligned with SARIF result levels.
type Level string

const (
	LevelNone    Level = "none"
	LevelNote    Level = "note"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// ParseLevel maps tool-specific severity vocabularies onto Level.
// Bandit uses HIGH/MEDIUM/LOW, mypy uses error/warning/note.
// Unrecognized tokens map to LevelWarning as a safe default.
func ParseLevel(raw string) Level {
	switch raw {
	case "error", "HIGH":
		return LevelError
	case "warning", "MEDIUM":
		return LevelWarning
	case "note", "LOW":
		return LevelNote
	case "none":
		return LevelNone
	}

	return LevelWarning
}

// Location points into a source file. Line and Column are 1-based;
// zero means the tool did not report them.
type Location struct {
	Path   string `json:"path"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// Finding is the canonical output unit of the parsing layer.
//
// RuleID is never empty: when the underlying tool emits no code, the
// tool's own name is used instead. Message may be empty but is always
// present. Locations holds 0 or 1 entries for the supported tools, but
// stays a slice for SARIF compatibility. A finding whose location could
// not be parsed is kept with an empty Locations slice, never dropped.
type Finding struct {
	RuleID    string     `json:"rule_id"`
	Level     Level      `json:"level"`
	Message   string     `json:"message"`
	Locations []Location `json:"locations,omitempty"`
}

// GateStatus tracks a gate through its lifecycle.
// Terminal states are Passed, Failed and ToolMissing.
type GateStatus int

const (
	StatusNotRun GateStatus = iota
	StatusRunning
	StatusPassed
	StatusFailed
	StatusToolMissing
)

func (s GateStatus) String() string {
	switch s {
	case StatusNotRun:
		return "not run"
	case StatusRunning:
		return "running"
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusToolMissing:
		return "tool not found"
	}

	return "unknown"
}

// GateResult is the immutable verdict of one quality gate.
type GateResult struct {
	Name     string     `json:"name"`
	Status   GateStatus `json:"-"`
	Passed   bool       `json:"passed"`
	Details  string     `json:"details,omitempty"`
	ExitCode int        `json:"exit_code,omitempty"`
}
