// Package pytest wraps the pytest test runner binary.
package pytest

import (
	"context"
	"time"

	"github.com/farcloser/casparian/internal/integration/binary"
)

const (
	name    = "pytest"
	timeout = 900 * time.Second
)

// Run executes the test suite quietly.
func Run(ctx context.Context, extraArgs ...string) (*binary.Invocation, error) {
	args := []string{"-q"}
	args = append(args, extraArgs...)

	return binary.Run(ctx, name, timeout, args...)
}

// RunWithCoverage executes the test suite and writes a Cobertura-style
// coverage.xml for the coverage gate to pick up.
func RunWithCoverage(ctx context.Context, covTarget string) (*binary.Invocation, error) {
	return Run(ctx, "--cov="+covTarget, "--cov-report=xml")
}
