package optimizer

import (
	"context"
	"errors"
	"io"
	"os/exec"
)

// ProcessRunner abstracts external process execution so the json-stdio
// path can be tested without real binaries.
type ProcessRunner interface {
	Run(ctx context.Context, path string, args []string, stdin io.Reader) (stdout, stderr []byte, err error)
}

// RealProcessRunner runs processes via os/exec.
type RealProcessRunner struct{}

// Run executes an external process, feeding stdin and capturing stdout.
func (r *RealProcessRunner) Run(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = stdin

	stdout, err := cmd.Output()
	if err != nil {
		// Output returns stderr in the error when the process exits nonzero.
		exitErr := &exec.ExitError{}
		if errors.As(err, &exitErr) {
			return stdout, exitErr.Stderr, err
		}
		return stdout, nil, err
	}

	return stdout, nil, nil
}
