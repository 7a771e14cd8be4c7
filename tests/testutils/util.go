// Package testutils provides test infrastructure for casparian integration tests.
package testutils

import (
	"path/filepath"
	"runtime"

	"github.com/containerd/nerdctl/mod/tigron/test"
)

// Setup creates a parent test case for binary-level subtests.
func Setup() *test.Case {
	return &test.Case{}
}

// Custom returns an executor running an arbitrary binary with arguments,
// mirroring tigron's test.Command convenience for custom binaries.
func Custom(binary string, args ...string) test.Executor {
	return func(_ test.Data, helpers test.Helpers) test.TestableCommand {
		return helpers.Custom(binary, args...)
	}
}

// Binary resolves one of the prebuilt binaries under the project's bin
// directory.
func Binary(name string) string {
	_, thisFile, _, _ := runtime.Caller(0) //nolint:dogsled // runtime.Caller returns 4 values, only file is needed
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))

	return filepath.Join(projectRoot, "bin", name)
}
