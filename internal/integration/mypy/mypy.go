// Package mypy wraps the mypy type checker binary.
package mypy

import (
	"context"
	"time"

	"github.com/farcloser/casparian/internal/integration/binary"
)

const (
	name = "mypy"
	// Mypy builds a full type graph on first run; give it room.
	timeout = 300 * time.Second
)

// Run type-checks the given paths. The flags force the stable, parseable
// line format: explicit error codes, no color, no summary footer.
func Run(ctx context.Context, paths []string) (*binary.Invocation, error) {
	args := []string{"--show-error-codes", "--no-color-output", "--no-error-summary"}
	args = append(args, paths...)

	return binary.Run(ctx, name, timeout, args...)
}
