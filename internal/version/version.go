// Package version holds build metadata injected via ldflags.
package version

// Build information (overridden at link time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
