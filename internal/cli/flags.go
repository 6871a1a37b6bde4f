package cli

import (
	"os"
	"os/exec"
	"strings"

	"github.com/tacogips/ignite/internal/config"
	"github.com/tacogips/ignite/internal/template/provider"
)

// Common flag names and descriptions
const (
	// Flag names
	FlagCwd            = "cwd"
	FlagTemplate       = "template"
	FlagInstall        = "install"
	FlagGitInit        = "gitInit"
	FlagPackageManager = "packageManager"
	FlagConfig         = "config"
	FlagForce          = "force"
	FlagNoColor        = "no-color"
	FlagQuiet          = "quiet"
	FlagDebug          = "debug"

	// Flag descriptions
	DescCwd            = "Base working directory for the project path"
	DescTemplate       = "Template name"
	DescInstall        = "Install dependencies (use --install=false to skip)"
	DescGitInit        = "Initialize a git repository (use --gitInit=false to skip)"
	DescPackageManager = "Package manager: npm, yarn, pnpm, bun, deno"
	DescConfig         = "Path to config file"
	DescForce          = "Overwrite an existing config file"
	DescNoColor        = "Disable colored output"
	DescQuiet          = "Suppress non-error output"
	DescDebug          = "Enable debug logging"
)

// DebugEnv enables debug logging like --debug.
const DebugEnv = "IGNITE_DEBUG"

// ghAuthToken asks the gh CLI for its stored token.
var ghAuthToken = func() string {
	if _, err := exec.LookPath("gh"); err != nil {
		return ""
	}
	output, err := exec.Command("gh", "auth", "token").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}

// getGitHubToken retrieves the GitHub token.
// Priority: config/IGNITE_GITHUB_TOKEN > GITHUB_TOKEN env > GH_TOKEN env > gh auth token command
func getGitHubToken(cfg *config.Config) string {
	if cfg != nil && cfg.GitHub.Token != "" {
		return cfg.GitHub.Token
	}
	if token := provider.GetGitHubTokenFromEnv(); token != "" {
		return token
	}
	return ghAuthToken()
}

// envEnabled reports whether a boolean environment switch is on.
func envEnabled(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
