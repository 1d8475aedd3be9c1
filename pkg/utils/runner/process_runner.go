package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ProcessResult captures the stdout and stderr collected during a process execution.
// Both fields contain the complete output, including any output produced before an
// error occurred.
type ProcessResult struct {
	Stdout string
	Stderr string
}

// ProcessRunner executes external programs while capturing their output.
type ProcessRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (ProcessResult, error)
}

// ExecProcessRunner runs programs with os/exec, displaying their output in real-time
// while also capturing it for the result.
type ExecProcessRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewExecProcessRunner creates a process runner.
//
// If stdout or stderr are nil, they default to os.Stdout and os.Stderr respectively.
func NewExecProcessRunner(stdout, stderr io.Writer) *ExecProcessRunner {
	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	return &ExecProcessRunner{
		stdout: stdout,
		stderr: stderr,
	}
}

// Run executes name with args in dir. The process is killed when ctx is cancelled.
//
// Returns the captured output and any error from starting or running the process.
func (r *ExecProcessRunner) Run(
	ctx context.Context,
	dir, name string,
	args ...string,
) (ProcessResult, error) {
	var outBuf, errBuf bytes.Buffer

	//nolint:gosec // the build tool and its arguments are assembled by the caller
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = io.MultiWriter(&outBuf, r.stdout)
	cmd.Stderr = io.MultiWriter(&errBuf, r.stderr)

	execErr := cmd.Run()

	result := ProcessResult{
		Stdout: outBuf.String(),
		Stderr: errBuf.String(),
	}

	if execErr != nil {
		return result, fmt.Errorf("process execution failed: %w", execErr)
	}

	return result, nil
}
