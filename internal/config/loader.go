package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/tacogips/ignite/internal/debug"
)

// EnvPrefix prefixes environment overrides, e.g. IGNITE_GITHUB_TOKEN.
const EnvPrefix = "IGNITE"

// Load reads configuration from path, layering defaults, the file, and
// IGNITE_* environment variables. When explicit is false a missing file is
// not an error and defaults are used.
func Load(path string, explicit bool) (*Config, error) {
	v := newViper()

	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid configuration path", err)
		}
		path = expanded
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid YAML syntax", err)
			}
			debug.Debug("[config] Loaded configuration from %s", path)
		} else if os.IsNotExist(err) {
			if explicit {
				return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
			}
			debug.Debug("[config] No configuration file at %s, using defaults", path)
			path = ""
		} else {
			return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to decode configuration", err)
	}

	if err := Validate(&cfg, path); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// newViper returns a viper instance with every key defaulted so that
// environment overrides are honored by Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("registry", def.Registry)
	v.SetDefault("default_project_path", def.DefaultProjectPath)
	v.SetDefault("templates", templatesToMaps(def.Templates))
	v.SetDefault("github.token", def.GitHub.Token)
	v.SetDefault("github.default_ref", def.GitHub.DefaultRef)
	v.SetDefault("github.archive_url", def.GitHub.ArchiveURL)
	v.SetDefault("github.timeout", def.GitHub.Timeout)
	v.SetDefault("git.backend", def.Git.Backend)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Save writes cfg as YAML to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := Validate(cfg, path); err != nil {
		return err
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, path, "invalid configuration path", err)
	}

	dir := filepath.Dir(expanded)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, expanded,
			fmt.Sprintf("failed to create directory %s", dir), err)
	}

	v := viper.New()
	v.Set("registry", cfg.Registry)
	v.Set("default_project_path", cfg.DefaultProjectPath)
	v.Set("templates", templatesToMaps(cfg.Templates))
	v.Set("github.token", cfg.GitHub.Token)
	v.Set("github.default_ref", cfg.GitHub.DefaultRef)
	v.Set("github.archive_url", cfg.GitHub.ArchiveURL)
	v.Set("github.timeout", cfg.GitHub.Timeout)
	v.Set("git.backend", cfg.Git.Backend)
	v.SetConfigType("yaml")

	if err := v.WriteConfigAs(expanded); err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, expanded, "failed to write configuration", err)
	}
	return nil
}

// Exists reports whether a configuration file is present at path.
func Exists(path string) (bool, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(expanded)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func templatesToMaps(templates []TemplateOption) []map[string]any {
	out := make([]map[string]any, len(templates))
	for i, t := range templates {
		m := map[string]any{"label": t.Label, "value": t.Value}
		if t.Hint != "" {
			m["hint"] = t.Hint
		}
		out[i] = m
	}
	return out
}

// ExpandPath expands ~ to home directory and evaluates relative paths.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand home directory: %w", err)
	}

	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	return absPath, nil
}
