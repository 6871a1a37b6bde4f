// Package vcs initializes a version-control repository in a scaffolded project.
package vcs

import (
	"context"
	"fmt"

	git "github.com/go-git/go-git/v5"

	"github.com/tacogips/ignite/internal/debug"
	"github.com/tacogips/ignite/internal/process"
)

// Backend names accepted in configuration.
const (
	BackendExec    = "exec"
	BackendBuiltin = "builtin"
)

// Initializer creates an empty repository in a directory.
type Initializer interface {
	Init(ctx context.Context, dir string) error
}

// ExecInitializer spawns the git binary so the operator sees its native output.
type ExecInitializer struct {
	Runner process.Runner
}

// NewExecInitializer creates an ExecInitializer.
// A nil runner falls back to process.NewExecRunner.
func NewExecInitializer(runner process.Runner) *ExecInitializer {
	if runner == nil {
		runner = process.NewExecRunner()
	}
	return &ExecInitializer{Runner: runner}
}

// Init runs "git init" in dir.
func (i *ExecInitializer) Init(ctx context.Context, dir string) error {
	debug.Debug("[vcs] git init (exec) in %s", dir)
	return i.Runner.Run(ctx, dir, "git", "init")
}

// BuiltinInitializer initializes the repository in-process with go-git,
// for machines without a git binary.
type BuiltinInitializer struct{}

// Init creates a non-bare repository in dir.
func (BuiltinInitializer) Init(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	debug.Debug("[vcs] git init (builtin) in %s", dir)
	if _, err := git.PlainInit(dir, false); err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	return nil
}

// New returns the Initializer for a configured backend.
func New(backend string, runner process.Runner) (Initializer, error) {
	switch backend {
	case "", BackendExec:
		return NewExecInitializer(runner), nil
	case BackendBuiltin:
		return BuiltinInitializer{}, nil
	default:
		return nil, fmt.Errorf("unknown git backend %q (expected %q or %q)", backend, BackendExec, BackendBuiltin)
	}
}
