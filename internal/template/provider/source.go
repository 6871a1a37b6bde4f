package provider

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// Provider names.
const (
	ProviderGitHub = "github"
	ProviderLocal  = "local"
)

// DefaultRef is used when a GitHub locator does not pin a ref.
const DefaultRef = "main"

// Source is a parsed template locator.
type Source struct {
	// Provider is "github" or "local".
	Provider string
	// Owner is the GitHub repository owner.
	Owner string
	// Repo is the GitHub repository name.
	Repo string
	// Path is the template subdirectory inside the repository, or the
	// directory itself for local sources.
	Path string
	// Ref is the git branch, tag, or commit SHA.
	Ref string
}

// String formats the source as a canonical locator.
func (s Source) String() string {
	if s.Provider == ProviderLocal {
		return "file:" + s.Path
	}
	out := fmt.Sprintf("github:%s/%s", s.Owner, s.Repo)
	if s.Path != "" {
		out += "/" + s.Path
	}
	if s.Ref != "" {
		out += "#" + s.Ref
	}
	return out
}

// ParseSource parses a template locator.
// Supported formats:
//   - gh:owner/repo[/path][#ref]
//   - github:owner/repo[/path][#ref]
//   - https://github.com/owner/repo[/tree/ref/path]
//   - github.com/owner/repo[/path][#ref]
//   - ./relative, ../relative, /absolute, ~/home, file:///absolute (local directories)
//
// defaultRef is applied to GitHub sources without a ref; empty means DefaultRef.
func ParseSource(locator, defaultRef string) (Source, error) {
	locator = strings.TrimSpace(locator)
	if locator == "" {
		return Source{}, fmt.Errorf("template locator cannot be empty")
	}
	if defaultRef == "" {
		defaultRef = DefaultRef
	}

	if IsLocalPath(locator) {
		return parseLocal(locator)
	}

	rest := locator
	switch {
	case strings.HasPrefix(rest, "gh:"):
		rest = strings.TrimPrefix(rest, "gh:")
	case strings.HasPrefix(rest, "github:"):
		rest = strings.TrimPrefix(rest, "github:")
	case strings.HasPrefix(rest, "https://github.com/"):
		return parseGitHubWebURL(strings.TrimPrefix(rest, "https://github.com/"), defaultRef)
	case strings.HasPrefix(rest, "github.com/"):
		rest = strings.TrimPrefix(rest, "github.com/")
	default:
		return Source{}, fmt.Errorf("unsupported template locator %q (expected gh:owner/repo or a local path)", locator)
	}

	path, ref, _ := strings.Cut(rest, "#")
	src, err := parseOwnerRepoPath(path)
	if err != nil {
		return Source{}, err
	}
	src.Ref = ref
	if src.Ref == "" {
		src.Ref = defaultRef
	}
	return src, nil
}

// parseGitHubWebURL handles "owner/repo" and "owner/repo/tree/ref/path".
func parseGitHubWebURL(rest, defaultRef string) (Source, error) {
	rest = strings.TrimSuffix(rest, "/")
	if ownerRepo, treePath, ok := strings.Cut(rest, "/tree/"); ok {
		src, err := parseOwnerRepoPath(ownerRepo)
		if err != nil {
			return Source{}, err
		}
		ref, path, _ := strings.Cut(treePath, "/")
		if ref == "" {
			return Source{}, fmt.Errorf("missing ref after /tree/ in %q", rest)
		}
		src.Ref = ref
		src.Path = path
		return src, nil
	}

	src, err := parseOwnerRepoPath(strings.TrimSuffix(rest, ".git"))
	if err != nil {
		return Source{}, err
	}
	src.Ref = defaultRef
	return src, nil
}

// parseOwnerRepoPath parses "owner/repo" or "owner/repo/path" format.
func parseOwnerRepoPath(s string) (Source, error) {
	parts := strings.Split(strings.Trim(s, "/"), "/")
	if len(parts) < 2 {
		return Source{}, fmt.Errorf("invalid GitHub locator, expected owner/repo: %s", s)
	}

	owner := parts[0]
	repo := parts[1]
	if owner == "" || repo == "" {
		return Source{}, fmt.Errorf("owner and repo cannot be empty: %s", s)
	}

	src := Source{
		Provider: ProviderGitHub,
		Owner:    owner,
		Repo:     repo,
	}

	if len(parts) > 2 {
		sub := strings.Join(parts[2:], "/")
		if err := validateSubPath(sub); err != nil {
			return Source{}, err
		}
		src.Path = sub
	}

	return src, nil
}

// validateSubPath rejects repository subpaths that could escape the archive root.
func validateSubPath(sub string) error {
	for _, part := range strings.Split(sub, "/") {
		if part == ".." || part == "." {
			return fmt.Errorf("template path contains %q which is not allowed: %s", part, sub)
		}
	}
	return nil
}

func parseLocal(locator string) (Source, error) {
	path := strings.TrimPrefix(locator, "file://")
	path = strings.TrimPrefix(path, "file:")

	expanded, err := homedir.Expand(path)
	if err != nil {
		return Source{}, fmt.Errorf("failed to expand %q: %w", path, err)
	}

	return Source{
		Provider: ProviderLocal,
		Path:     filepath.Clean(expanded),
	}, nil
}

// IsLocalPath reports whether locator refers to a local directory.
func IsLocalPath(locator string) bool {
	if locator == "" {
		return false
	}
	if strings.HasPrefix(locator, "file:") {
		return true
	}
	if filepath.IsAbs(locator) {
		return true
	}
	return locator == "." || locator == "~" ||
		strings.HasPrefix(locator, "./") ||
		strings.HasPrefix(locator, "../") ||
		strings.HasPrefix(locator, "~/")
}

// JoinLocator appends name to a registry locator, keeping any "#ref" suffix
// at the end: JoinLocator("gh:o/r/templates#v1", "nuxt3") is
// "gh:o/r/templates/nuxt3#v1".
func JoinLocator(registry, name string) string {
	base, ref, hasRef := strings.Cut(registry, "#")
	joined := strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(name, "/")
	if hasRef {
		joined += "#" + ref
	}
	return joined
}
