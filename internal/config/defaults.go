package config

import (
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Default values.
const (
	DefaultRegistry    = "gh:XeicuLy/create-xeiculy-nuxt-app/templates"
	DefaultProjectPath = "nuxt-app"
	DefaultArchiveURL  = "https://github.com"
	DefaultRef         = "main"
	DefaultGitBackend  = "exec"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Registry:           DefaultRegistry,
		DefaultProjectPath: DefaultProjectPath,
		Templates:          DefaultTemplates(),
		GitHub: GitHubConfig{
			Token:      "",
			DefaultRef: DefaultRef,
			ArchiveURL: DefaultArchiveURL,
			Timeout:    0,
		},
		Git: GitConfig{
			Backend: DefaultGitBackend,
		},
	}
}

// DefaultTemplates returns the built-in template catalogue.
func DefaultTemplates() []TemplateOption {
	return []TemplateOption{
		{Label: "Nuxt3", Value: "nuxt3"},
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	homeDir, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "ignite", "config.yaml")
}
