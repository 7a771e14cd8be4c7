package binary

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/farcloser/primordium/fault"
)

// Invocation captures a completed subprocess run. A non-zero ExitCode is
// not an error at this layer: the quality tools exit non-zero whenever
// they find issues, and the gate layer decides what that means.
type Invocation struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Output returns stdout and stderr joined, which is how line-based tool
// parsers want their input (mypy notes can land on either).
func (i *Invocation) Output() string {
	return i.Stdout + "\n" + i.Stderr
}

// Available resolves a tool through PATH. The resolved absolute path is
// what Run ultimately executes, so probing and execution cannot disagree
// about which installation they found.
func Available(binName string) (string, bool) {
	path, err := exec.LookPath(binName)

	return path, err == nil
}

// Run executes a tool to completion and captures its output.
//
// It returns fault.ErrMissingRequirements when the binary is not in
// PATH, fault.ErrTimeout when the deadline expires, and
// fault.ErrCommandFailure for invocation failures that are not plain
// non-zero exits (permissions, broken interpreter). Those errors are
// never retried here.
func Run(ctx context.Context, binName string, timeout time.Duration, args ...string) (*Invocation, error) {
	slog.Debug("binary.Run", "binary", binName, "args", args)

	binPath, found := Available(binName)
	if !found {
		return nil, fmt.Errorf("%w: %s", fault.ErrMissingRequirements, binName)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binPath, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s after %v", fault.ErrTimeout, binName, timeout)
		}

		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s: %s: %w", fault.ErrCommandFailure, binName, stderr.String(), err)
		}
	}

	return &Invocation{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}, nil
}
