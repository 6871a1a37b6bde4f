package config

// Config represents the global ignite configuration.
type Config struct {
	// Registry is the base locator all template names are resolved under.
	Registry string `mapstructure:"registry" yaml:"registry" validate:"required,registry_source"`
	// DefaultProjectPath is the default answer of the project path prompt.
	DefaultProjectPath string `mapstructure:"default_project_path" yaml:"default_project_path" validate:"required"`
	// Templates are the options offered by the template prompt.
	Templates []TemplateOption `mapstructure:"templates" yaml:"templates" validate:"required,min=1,dive"`
	// GitHub configuration for repository access.
	GitHub GitHubConfig `mapstructure:"github" yaml:"github"`
	// Git configuration for repository initialization.
	Git GitConfig `mapstructure:"git" yaml:"git"`
}

// TemplateOption is one entry of the template select prompt.
type TemplateOption struct {
	// Label is the display name.
	Label string `mapstructure:"label" yaml:"label" validate:"required"`
	// Value is the template name joined onto the registry.
	Value string `mapstructure:"value" yaml:"value" validate:"required,template_value"`
	// Hint is shown next to the label.
	Hint string `mapstructure:"hint" yaml:"hint,omitempty"`
}

// GitHubConfig represents GitHub-specific settings.
type GitHubConfig struct {
	// Token is the GitHub personal access token for private repositories.
	Token string `mapstructure:"token" yaml:"token,omitempty"`
	// DefaultRef is the default branch/ref if not specified.
	DefaultRef string `mapstructure:"default_ref" yaml:"default_ref" validate:"required"`
	// ArchiveURL is the host repository tarballs are downloaded from.
	ArchiveURL string `mapstructure:"archive_url" yaml:"archive_url" validate:"required,url"`
	// Timeout is the request timeout in seconds (0 = no timeout).
	Timeout int `mapstructure:"timeout" yaml:"timeout" validate:"gte=0"`
}

// GitConfig represents repository initialization settings.
type GitConfig struct {
	// Backend selects how "git init" runs: "exec" spawns git, "builtin" uses go-git.
	Backend string `mapstructure:"backend" yaml:"backend" validate:"oneof=exec builtin"`
}

// TemplateValues returns the configured template names.
func (c *Config) TemplateValues() []string {
	values := make([]string, len(c.Templates))
	for i, t := range c.Templates {
		values[i] = t.Value
	}
	return values
}
