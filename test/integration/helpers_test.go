package integration

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tacogips/ignite/internal/app"
	"github.com/tacogips/ignite/internal/pm"
	"github.com/tacogips/ignite/internal/template/provider"
	"github.com/tacogips/ignite/internal/vcs"
)

// fixtureRegistry returns the absolute path of the fixture template registry.
func fixtureRegistry(t *testing.T) string {
	t.Helper()

	dir, err := filepath.Abs(filepath.Join("..", "fixtures", "templates"))
	require.NoError(t, err)
	return dir
}

// recordingRunner stands in for spawned package managers.
type recordingRunner struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (r *recordingRunner) Run(_ context.Context, dir, name string, args ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, append([]string{dir, name}, args...))
	return r.err
}

// newScaffolder wires the real local provider and builtin git backend.
func newScaffolder(t *testing.T, runner *recordingRunner) *app.Scaffolder {
	t.Helper()

	git, err := vcs.New(vcs.BackendBuiltin, nil)
	require.NoError(t, err)

	return &app.Scaffolder{
		Registry:   fixtureRegistry(t),
		Resolver:   &app.InputResolver{Getenv: func(string) string { return "" }},
		Downloader: provider.NewDownloader(provider.ProviderConfig{}),
		Installer:  pm.NewInstaller(runner),
		Git:        git,
	}
}
