// Package rules implements rule identifier normalization across tools.
//
// Two conventions coexist in consumers of our reports: bare codes
// ("E501", "name-defined") and tool-prefixed codes ("flake8:E501").
// The active Style decides which one every parser emits for a run.
package rules

import (
	"strings"
)

// Style selects the rule identifier convention for a run.
type Style int

const (
	// StyleBare emits the tool's own code unchanged ("E501").
	StyleBare Style = iota
	// StyleTool prefixes codes with the tool name ("flake8:E501").
	StyleTool
)

func (s Style) String() string {
	if s == StyleTool {
		return "tool"
	}

	return "bare"
}

// ParseStyle converts a string to a Style. Matching is case-insensitive.
// Anything other than "tool" or "bare", including the empty string,
// defaults to StyleBare.
func ParseStyle(raw string) Style {
	if strings.EqualFold(strings.TrimSpace(raw), "tool") {
		return StyleTool
	}

	return StyleBare
}

// MakeRuleID formats a rule identifier in the given style.
// A blank raw code falls back to the tool's own name, so the result is
// never empty: bare style yields the tool name alone, tool style yields
// "tool:tool".
func MakeRuleID(style Style, tool, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = tool
	}

	if style == StyleTool {
		return tool + ":" + raw
	}

	return raw
}

// Tool identifies one of the normalizers with dedicated handling.
type Tool int

const (
	ToolUnknown Tool = iota
	ToolFlake8
	ToolMypy
	ToolBandit
	ToolESLint
	ToolJest
)

// ParseTool resolves a tool name, trimmed and lowercased, to a Tool.
// An empty name resolves through the literal "none", which is unknown.
func ParseTool(name string) (Tool, string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "none"
	}

	switch name {
	case "flake8":
		return ToolFlake8, name
	case "mypy":
		return ToolMypy, name
	case "bandit":
		return ToolBandit, name
	case "eslint":
		return ToolESLint, name
	case "jest":
		return ToolJest, name
	}

	return ToolUnknown, name
}

// ExtractMypyRule extracts the rule code from mypy's embedded-bracket
// convention ("error[name-defined]") and returns it as "mypy:<code>".
// The rule body spans the first "[" to the last "]", so nested brackets
// stay inside the body. Malformed brackets (no closing bracket, or a
// closing bracket before the opening one) fall back to the whole input
// as the body. Input already carrying the "mypy:" prefix is returned
// unchanged, which makes the function idempotent.
func ExtractMypyRule(raw string) string {
	if strings.HasPrefix(raw, "mypy:") {
		return raw
	}

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")

	if start != -1 && end != -1 && end > start {
		return "mypy:" + raw[start+1:end]
	}

	return "mypy:" + raw
}

// NormalizeRule converts a tool-specific code into "tool:code" form.
//
// Examples:
//
//	flake8 + "E501"               -> "flake8:E501"
//	mypy   + "error[name-defined]" -> "mypy:name-defined"
//	bandit + "B101"               -> "bandit:B101"
//
// Every per-tool arm is idempotent: feeding a normalized identifier back
// in returns it unchanged. Unknown tools fall through to "tool:code".
func NormalizeRule(tool, raw string) string {
	known, name := ParseTool(tool)

	switch known {
	case ToolFlake8, ToolBandit, ToolESLint, ToolJest:
		if strings.HasPrefix(raw, name+":") {
			return raw
		}

		return name + ":" + raw
	case ToolMypy:
		return ExtractMypyRule(raw)
	case ToolUnknown:
	}

	return name + ":" + raw
}
