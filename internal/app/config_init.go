package app

import (
	"github.com/tacogips/ignite/internal/config"
	"github.com/tacogips/ignite/internal/debug"
)

// InitConfigOptions contains options for writing the configuration file.
type InitConfigOptions struct {
	// Path is the configuration file to create. Empty means the default path.
	Path string
	// Force overwrites an existing file if true.
	Force bool
}

// InitConfig writes the default configuration to opts.Path and returns the
// path written.
func InitConfig(opts InitConfigOptions) (string, error) {
	path := opts.Path
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if path == "" {
		return "", NewConfigInitError("cannot determine configuration path (no home directory)", nil)
	}

	debug.DebugSection("[app] InitConfig workflow start")
	debug.DebugValue("[app] Config path", path)
	debug.DebugValue("[app] Force", opts.Force)

	exists, err := config.Exists(path)
	if err != nil {
		return "", NewConfigInitError("failed to check configuration file", err)
	}
	if exists && !opts.Force {
		return "", NewConfigInitError("configuration already exists at "+path+" (use --force to overwrite)", nil)
	}

	if err := config.Save(path, config.DefaultConfig()); err != nil {
		debug.Debug("[app] Failed to save configuration: %v", err)
		return "", NewConfigInitError("failed to write configuration", err)
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return path, nil
	}
	debug.Debug("[app] Configuration written to %s", expanded)
	return expanded, nil
}
