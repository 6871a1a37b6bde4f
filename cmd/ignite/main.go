package main

import (
	"github.com/tacogips/ignite/internal/cli"
	ver "github.com/tacogips/ignite/internal/version"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	// Set version info from build-time variables
	ver.Version = version
	ver.GitCommit = gitCommit
	ver.BuildDate = buildDate

	cli.Execute()
}
