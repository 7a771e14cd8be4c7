// Package bandit wraps the bandit security scanner binary.
package bandit

import (
	"context"
	"time"

	"github.com/farcloser/casparian/internal/integration/binary"
)

const (
	name    = "bandit"
	timeout = 120 * time.Second
)

// Run scans the target tree recursively, excluding tests, and asks for
// JSON output. B101 (assert) is suppressed: asserts are idiomatic in the
// test suites we gate.
func Run(ctx context.Context, target, exclude string) (*binary.Invocation, error) {
	return binary.Run(ctx, name, timeout,
		"-r", target,
		"-x", exclude,
		"-s", "B101",
		"-f", "json",
		"-q",
	)
}
