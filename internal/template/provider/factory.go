package provider

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tacogips/ignite/internal/debug"
)

// ProviderConfig holds the settings shared by all providers.
type ProviderConfig struct {
	// GitHubToken is the optional GitHub personal access token.
	GitHubToken string
	// ArchiveURL overrides the host GitHub archives are downloaded from.
	ArchiveURL string
	// Timeout bounds each HTTP request; zero waits indefinitely.
	Timeout time.Duration
	// DefaultRef is used for GitHub locators without "#ref".
	DefaultRef string
	// BaseDir is the base directory for resolving relative local paths.
	BaseDir string
}

// NewProvider creates the provider that serves src.
func NewProvider(src Source, config ProviderConfig) (Provider, error) {
	switch src.Provider {
	case ProviderLocal:
		if config.BaseDir != "" {
			return NewLocalProviderWithBase(config.BaseDir), nil
		}
		return NewLocalProvider(), nil
	case ProviderGitHub:
		p := NewGitHubProviderWithToken(config.GitHubToken, config.Timeout)
		if config.ArchiveURL != "" {
			p.ArchiveURL = config.ArchiveURL
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", src.Provider)
	}
}

// Downloader resolves a locator string and downloads it with the matching provider.
type Downloader struct {
	Config ProviderConfig
}

// NewDownloader creates a Downloader.
func NewDownloader(config ProviderConfig) *Downloader {
	return &Downloader{Config: config}
}

// Download parses locator and writes the template into dest.
func (d *Downloader) Download(ctx context.Context, locator, dest string) (*Result, error) {
	debug.DebugValue("[provider] Locator", locator)

	src, err := ParseSource(locator, d.Config.DefaultRef)
	if err != nil {
		return nil, NewInvalidSourceError("resolver", locator, err)
	}
	debug.DebugValue("[provider] Resolved source", src.String())

	prov, err := NewProvider(src, d.Config)
	if err != nil {
		return nil, NewInvalidSourceError("resolver", locator, err)
	}

	start := time.Now()
	result, err := prov.Download(ctx, src, dest)
	debug.DebugDuration("download", start)
	return result, err
}

// GetGitHubTokenFromEnv retrieves the GitHub token from environment variables.
// Checks GITHUB_TOKEN first, then falls back to GH_TOKEN.
func GetGitHubTokenFromEnv() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token
	}
	return ""
}
