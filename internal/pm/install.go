package pm

import (
	"context"
	"fmt"

	"github.com/tacogips/ignite/internal/debug"
	"github.com/tacogips/ignite/internal/process"
)

// Installer installs dependencies by spawning the package manager itself.
type Installer struct {
	Runner process.Runner
}

// NewInstaller creates an Installer using the given runner.
// A nil runner falls back to process.NewExecRunner.
func NewInstaller(runner process.Runner) *Installer {
	if runner == nil {
		runner = process.NewExecRunner()
	}
	return &Installer{Runner: runner}
}

// Install runs "<command> install" inside dir and blocks until it finishes.
func (i *Installer) Install(ctx context.Context, dir string, m Manager) error {
	if !m.Name.Valid() {
		return fmt.Errorf("unsupported package manager %q", m.Name)
	}
	if m.Command == "" {
		m.Command = string(m.Name)
	}

	debug.Debug("[pm] Installing dependencies with %s in %s", m.Name, dir)
	if err := i.Runner.Run(ctx, dir, m.Command, m.InstallArgs()...); err != nil {
		return fmt.Errorf("%s install failed: %w", m.Name, err)
	}
	return nil
}
