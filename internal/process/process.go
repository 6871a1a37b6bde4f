// Package process spawns external tools with the operator's terminal attached.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/tacogips/ignite/internal/debug"
)

// Runner spawns a command in a working directory and waits for it to exit.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExitError reports a spawned command that exited unsuccessfully.
type ExitError struct {
	// Command is the command line that was run.
	Command string
	// Code is the process exit code (-1 when unknown).
	Code int
	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Code >= 0 {
		return fmt.Sprintf("command %q exited with code %d", e.Command, e.Code)
	}
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ExitError) Unwrap() error {
	return e.Cause
}

// ExecRunner runs commands with os/exec, inheriting standard I/O so the
// operator sees the tool's native output.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Env is appended to the current environment.
	Env []string
}

// NewExecRunner creates a runner attached to the process's standard streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run spawns name with args in dir and blocks until it exits.
// A non-zero exit is returned as *ExitError.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmdline := strings.TrimSpace(name + " " + strings.Join(args, " "))
	debug.Debug("[process] Running %q in %s", cmdline, dir)

	path, err := exec.LookPath(name)
	if err != nil {
		return &ExitError{Command: cmdline, Code: -1, Cause: err}
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Command: cmdline, Code: exitErr.ExitCode(), Cause: err}
		}
		return &ExitError{Command: cmdline, Code: -1, Cause: err}
	}

	debug.Debug("[process] %q finished", cmdline)
	return nil
}
