// Package git scopes gate runs to changed files.
//
// Scoping is best effort by design: any git failure degrades to "no
// scope", which callers treat as "lint the configured default paths".
// A broken git setup must never fail a quality gate on its own.
package git

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/farcloser/casparian/internal/integration/binary"
)

const (
	name    = "git"
	timeout = 30 * time.Second
)

// ChangedFiles returns the files changed between base and head, using a
// merge-base diff (base...head). Both refs are verified first.
func ChangedFiles(ctx context.Context, base, head string) []string {
	for _, ref := range []string{base, head} {
		if inv, err := binary.Run(ctx, name, timeout, "rev-parse", "--verify", ref); err != nil || inv.ExitCode != 0 {
			slog.Debug("git.ChangedFiles", "ref", ref, "stage", "verify failed")

			return nil
		}
	}

	inv, err := binary.Run(ctx, name, timeout, "diff", "--name-only", base+"..."+head)
	if err != nil || inv.ExitCode != 0 {
		return nil
	}

	return splitLines(inv.Stdout)
}

// LsFiles returns all tracked files, the fallback scope when no event
// information is available.
func LsFiles(ctx context.Context) []string {
	inv, err := binary.Run(ctx, name, timeout, "ls-files")
	if err != nil || inv.ExitCode != 0 {
		return nil
	}

	return splitLines(inv.Stdout)
}

// ChangedPythonFiles resolves the lint scope. With a usable event file
// it diffs base against head; otherwise it falls back to all tracked
// files. Only .py paths are returned.
func ChangedPythonFiles(ctx context.Context, eventPath string) []string {
	var files []string

	if eventPath != "" {
		if base, head, ok := baseHeadFromEvent(eventPath); ok {
			files = ChangedFiles(ctx, base, head)
		}
	}

	if files == nil {
		files = LsFiles(ctx)
	}

	var scoped []string

	for _, f := range files {
		if strings.HasSuffix(f, ".py") {
			scoped = append(scoped, f)
		}
	}

	return scoped
}

// GitHub delivers pull_request events with base/head SHAs and push
// events with before/after.
type event struct {
	PullRequest *struct {
		Base struct {
			SHA string `json:"sha"`
		} `json:"base"`
		Head struct {
			SHA string `json:"sha"`
		} `json:"head"`
	} `json:"pull_request"`
	Before string `json:"before"`
	After  string `json:"after"`
}

func baseHeadFromEvent(path string) (string, string, bool) {
	data, err := os.ReadFile(path) //nolint:gosec // event path is CI-provided input
	if err != nil {
		return "", "", false
	}

	var ev event
	if err := json.Unmarshal(data, &ev); err != nil {
		return "", "", false
	}

	if pr := ev.PullRequest; pr != nil && pr.Base.SHA != "" && pr.Head.SHA != "" {
		return pr.Base.SHA, pr.Head.SHA, true
	}

	if ev.Before != "" && ev.After != "" {
		return ev.Before, ev.After, true
	}

	return "", "", false
}

func splitLines(out string) []string {
	var lines []string

	for line := range strings.Lines(out) {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}
