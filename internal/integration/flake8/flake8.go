// Package flake8 wraps the flake8 linter binary.
package flake8

import (
	"context"
	"time"

	"github.com/farcloser/casparian/internal/integration/binary"
)

const (
	name = "flake8"
	// Linting a large changed-file set on a cold cache can be slow.
	timeout = 120 * time.Second
)

// Run lints the given paths and returns the captured invocation.
func Run(ctx context.Context, paths []string) (*binary.Invocation, error) {
	return binary.Run(ctx, name, timeout, paths...)
}
